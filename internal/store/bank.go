package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type bankRepo struct {
	db *sql.DB
}

func (r *bankRepo) Save(ctx context.Context, rec *BankRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save bank: empty id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO banks (id, name, source, total, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		  name = excluded.name,
		  source = excluded.source,
		  total = excluded.total,
		  payload = excluded.payload,
		  created_at = excluded.created_at`,
		rec.ID, rec.Name, rec.Source, rec.Total, string(rec.Payload), rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save bank %s: %w", rec.ID, err)
	}
	return nil
}

func (r *bankRepo) Get(ctx context.Context, id string) (*BankRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, source, total, payload, created_at FROM banks WHERE id = $1`, id)
	rec, err := scanBank(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bank %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bank %s: %w", id, err)
	}
	return rec, nil
}

func (r *bankRepo) Latest(ctx context.Context) (*BankRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, source, total, payload, created_at FROM banks ORDER BY created_at DESC, id DESC LIMIT 1`)
	rec, err := scanBank(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest bank: %w", err)
	}
	return rec, nil
}

func (r *bankRepo) List(ctx context.Context, opts QueryOpts) ([]BankRecord, error) {
	var w whereBuilder
	w.timeRange(opts)
	query := `SELECT id, name, source, total, created_at FROM banks` + w.String() +
		` ORDER BY created_at DESC, id DESC` + w.limit(opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var out []BankRecord
	for rows.Next() {
		rec, err := scanBank(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *bankRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM banks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bank %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("bank %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBank(row rowScanner, withPayload bool) (*BankRecord, error) {
	var (
		rec     BankRecord
		payload string
		created int64
	)
	var err error
	if withPayload {
		err = row.Scan(&rec.ID, &rec.Name, &rec.Source, &rec.Total, &payload, &created)
	} else {
		err = row.Scan(&rec.ID, &rec.Name, &rec.Source, &rec.Total, &created)
	}
	if err != nil {
		return nil, err
	}
	if withPayload {
		rec.Payload = []byte(payload)
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return &rec, nil
}
