package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lasante_hotel/internal/adapters/observability"
	"lasante_hotel/internal/domain"
)

const backend = "mysql"

// Repo stores the dataset in one table. Save replaces the table content
// inside a transaction, so a failed save leaves the previous dataset intact;
// concurrent Load/Save cycles still race like every other backend.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Load(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	ds, err := r.load(ctx)
	observability.ObserveStore(backend, "load", err, time.Since(start))
	return ds, err
}

func (r *Repo) load(ctx context.Context) (domain.Dataset, error) {
	// first use creates the empty table
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return domain.Dataset{}, fmt.Errorf("create reservations table: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer rows.Close()

	var out []domain.Reservation
	cells := make([]sql.NullString, len(domain.Columns))
	dst := make([]any, len(cells))
	for i := range cells {
		dst[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dst...); err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: %v", domain.ErrCorruptStore, err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		rec, err := domain.ParseRow(row)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("reservations row %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, err
	}
	return domain.Dataset{Records: out}, nil
}

func (r *Repo) Save(ctx context.Context, d domain.Dataset) error {
	start := time.Now()
	err := r.save(ctx, d)
	observability.ObserveStore(backend, "save", err, time.Since(start))
	return err
}

func (r *Repo) save(ctx context.Context, d domain.Dataset) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create reservations table: %w", err)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteAllSQL); err != nil {
		return err
	}
	for lo := 0; lo < len(d.Records); lo += insertBatch {
		hi := lo + insertBatch
		if hi > len(d.Records) {
			hi = len(d.Records)
		}
		if err := insertRows(ctx, tx, d.Records[lo:hi]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, rs []domain.Reservation) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*len(domain.Columns))
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			rv.LastName,
			rv.FirstName,
			rv.Phone,
			rv.City,
			rv.Profession,
			rv.NationalID,
			rv.RoomPrice,
			rv.StayDays,
			rv.ArrivalDate.Format(domain.DateLayout),
			rv.TotalAmount,
			rv.RecordedAt.Format(domain.TimestampLayout),
		)
	}
	_, err := tx.ExecContext(ctx, insertPrefix+strings.Join(values, ","), args...)
	return err
}
