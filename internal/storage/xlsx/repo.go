// Package xlsx keeps the reservation dataset in a single spreadsheet file,
// one header row followed by one row per reservation, on the first sheet.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"lasante_hotel/internal/adapters/observability"
	"lasante_hotel/internal/domain"
)

const backend = "xlsx"

type Repo struct{ path string }

func New(path string) *Repo { return &Repo{path: path} }

func (r *Repo) Path() string { return r.path }

// Load returns the workbook content. A missing file is created with the
// header row before returning an empty dataset. An existing file that cannot
// be decoded is reported as domain.ErrCorruptStore and left untouched.
func (r *Repo) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	start := time.Now()
	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		err := writeFile(r.path, domain.Dataset{})
		observability.ObserveStore(backend, "init", err, time.Since(start))
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("initialise %s: %w", r.path, err)
		}
		log.Info().Str("path", r.path).Msg("created empty reservations workbook")
		return domain.Dataset{}, nil
	} else if err != nil {
		return domain.Dataset{}, err
	}

	ds, err := ReadFile(r.path)
	observability.ObserveStore(backend, "load", err, time.Since(start))
	return ds, err
}

// Save overwrites the whole file with d. The write goes straight to the
// target path: an interrupted save can leave a truncated workbook.
func (r *Repo) Save(ctx context.Context, d domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := writeFile(r.path, d)
	observability.ObserveStore(backend, "save", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

// ReadFile decodes an existing workbook without creating it.
func ReadFile(path string) (domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, err
		}
		return domain.Dataset{}, fmt.Errorf("%w: open %s: %v", domain.ErrCorruptStore, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: %s has no sheet", domain.ErrCorruptStore, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: read %s: %v", domain.ErrCorruptStore, path, err)
	}
	if len(rows) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: %s has no header row", domain.ErrCorruptStore, path)
	}
	if err := domain.CheckHeader(rows[0]); err != nil {
		return domain.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}

	recs := make([]domain.Reservation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := domain.ParseRow(row)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		recs = append(recs, rec)
	}
	return domain.Dataset{Records: recs}, nil
}

func writeFile(path string, d domain.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(f.GetSheetName(0))
	if err != nil {
		return err
	}
	header := make([]any, len(domain.Columns))
	for i, c := range domain.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, rec := range d.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values(rec)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// values keeps the numeric columns numeric so spreadsheet sums work.
func values(r domain.Reservation) []any {
	return []any{
		r.LastName,
		r.FirstName,
		r.Phone,
		r.City,
		r.Profession,
		r.NationalID,
		r.RoomPrice,
		r.StayDays,
		r.ArrivalDate.Format(domain.DateLayout),
		r.TotalAmount,
		r.RecordedAt.Format(domain.TimestampLayout),
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
