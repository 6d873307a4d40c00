package llm

import "context"

// Purpose labels why a request was made. It is stored with every logged
// request and is what `mathpower llm list --purpose` filters on.
type Purpose string

const (
	PurposeCalculationBatch Purpose = "calculation-batch"
	PurposeUnlabeled        Purpose = "unlabeled"
)

// Tag is the label attached to a request context. Level is the difficulty
// the request generates for, if any.
type Tag struct {
	Purpose Purpose
	Level   string
}

// String renders the tag as stored in the event log, e.g.
// "calculation-batch:easy".
func (t Tag) String() string {
	p := t.Purpose
	if p == "" {
		p = PurposeUnlabeled
	}
	if t.Level == "" {
		return string(p)
	}
	return string(p) + ":" + t.Level
}

type tagKey struct{}

// WithTag labels requests made with ctx.
func WithTag(ctx context.Context, purpose Purpose, level string) context.Context {
	return context.WithValue(ctx, tagKey{}, Tag{Purpose: purpose, Level: level})
}

// TagFrom returns the label set by WithTag. Unlabeled contexts report
// PurposeUnlabeled.
func TagFrom(ctx context.Context) Tag {
	if t, ok := ctx.Value(tagKey{}).(Tag); ok {
		return t
	}
	return Tag{Purpose: PurposeUnlabeled}
}
