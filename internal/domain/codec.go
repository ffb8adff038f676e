package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column positions in Columns.
const (
	colLastName = iota
	colFirstName
	colPhone
	colCity
	colProfession
	colNationalID
	colRoomPrice
	colStayDays
	colArrivalDate
	colTotalAmount
	colRecordedAt
)

// CheckHeader reports ErrCorruptStore unless header is exactly Columns.
// Trailing empty cells are ignored.
func CheckHeader(header []string) error {
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	if len(header) != len(Columns) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrCorruptStore, len(header), len(Columns))
	}
	for i, c := range Columns {
		if header[i] != c {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrCorruptStore, i+1, header[i], c)
		}
	}
	return nil
}

// Cells renders r as one sheet row in Columns order.
func (r Reservation) Cells() []string {
	return []string{
		r.LastName,
		r.FirstName,
		r.Phone,
		r.City,
		r.Profession,
		r.NationalID,
		strconv.FormatInt(r.RoomPrice, 10),
		strconv.Itoa(r.StayDays),
		r.ArrivalDate.Format(DateLayout),
		strconv.FormatInt(r.TotalAmount, 10),
		r.RecordedAt.Format(TimestampLayout),
	}
}

// ParseRow is the inverse of Cells. Missing trailing cells read as "".
// Values are taken verbatim: a stored total is not recomputed.
func ParseRow(cells []string) (Reservation, error) {
	if len(cells) > len(Columns) {
		return Reservation{}, fmt.Errorf("%w: row has %d cells, want %d", ErrCorruptStore, len(cells), len(Columns))
	}
	row := make([]string, len(Columns))
	copy(row, cells)

	r := Reservation{
		LastName:   row[colLastName],
		FirstName:  row[colFirstName],
		Phone:      row[colPhone],
		City:       row[colCity],
		Profession: row[colProfession],
		NationalID: row[colNationalID],
	}
	var err error
	if r.RoomPrice, err = parseInt(row[colRoomPrice]); err != nil {
		return Reservation{}, cellErr(colRoomPrice, err)
	}
	days, err := parseInt(row[colStayDays])
	if err != nil {
		return Reservation{}, cellErr(colStayDays, err)
	}
	r.StayDays = int(days)
	if r.ArrivalDate, err = time.ParseInLocation(DateLayout, strings.TrimSpace(row[colArrivalDate]), time.Local); err != nil {
		return Reservation{}, cellErr(colArrivalDate, err)
	}
	if r.TotalAmount, err = parseInt(row[colTotalAmount]); err != nil {
		return Reservation{}, cellErr(colTotalAmount, err)
	}
	if r.RecordedAt, err = time.ParseInLocation(TimestampLayout, strings.TrimSpace(row[colRecordedAt]), time.Local); err != nil {
		return Reservation{}, cellErr(colRecordedAt, err)
	}
	return r, nil
}

// parseInt accepts "8000" as well as "8000.0", which spreadsheet tools emit
// for numeric columns that once held a blank.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int64(f), nil
}

func cellErr(col int, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorruptStore, Columns[col], err)
}
