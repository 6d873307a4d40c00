package calcset

import (
	"bytes"
	"fmt"

	"github.com/aleksandri0/mathpower/internal/store"
)

// ToRecord encodes b as JSON for the bank repository.
func ToRecord(b *Bank) (*store.BankRecord, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b, FormatJSON); err != nil {
		return nil, err
	}
	return &store.BankRecord{
		ID:        b.ID,
		Name:      b.Name,
		Source:    b.Source,
		Total:     b.Total(),
		CreatedAt: b.CreatedAt,
		Payload:   buf.Bytes(),
	}, nil
}

// FromRecord decodes a stored bank.
func FromRecord(rec *store.BankRecord) (*Bank, error) {
	b, err := Decode(bytes.NewReader(rec.Payload), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("stored bank %s: %w", rec.ID, err)
	}
	return b, nil
}
