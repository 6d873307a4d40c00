package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // id > After (events only)
	Before int64     // id < Before (events only)
	From   time.Time // created_at >= From
	To     time.Time // created_at <= To
}

// BankRecord is a stored calculation bank. Payload holds the encoded bank;
// the store does not interpret it.
type BankRecord struct {
	ID        string
	Name      string
	Source    string
	Total     int
	CreatedAt time.Time
	Payload   []byte
}

// BankRepo stores calculation banks.
type BankRepo interface {
	// Save inserts the bank or replaces the one with the same ID.
	Save(ctx context.Context, rec *BankRecord) error

	// Get returns the bank with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*BankRecord, error)

	// Latest returns the most recently created bank, or nil if none exist.
	Latest(ctx context.Context) (*BankRecord, error)

	// List returns banks newest first. Payload is left empty.
	List(ctx context.Context, opts QueryOpts) ([]BankRecord, error)

	// Delete removes the bank with the given ID or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request.
type LLMEvent struct {
	ID        int64
	CreatedAt time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
}

// whereBuilder collects numbered ($N) conditions, which both drivers accept.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) timeRange(opts QueryOpts) {
	if !opts.From.IsZero() {
		w.add("created_at >= $%d", opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		w.add("created_at <= $%d", opts.To.UnixMilli())
	}
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *whereBuilder) limit(n int) string {
	if n <= 0 {
		return ""
	}
	w.args = append(w.args, n)
	return fmt.Sprintf(" LIMIT $%d", len(w.args))
}
