package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"lasante_hotel/internal/adapters/observability"
	"lasante_hotel/internal/domain"
)

type ReservationService struct {
	repo domain.ReservationRepository
	now  func() time.Time
	v    *validator.Validate
}

// NewReservationService wires the write path. now may be nil (time.Now).
func NewReservationService(r domain.ReservationRepository, now func() time.Time) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{repo: r, now: now, v: newValidator()}
}

// Submit validates in, derives the total and timestamp, and appends the
// record to the store by rewriting the whole dataset.
//
// Concurrent calls are not serialised: each one loads its own snapshot and the
// last Save wins.
func (s *ReservationService) Submit(ctx context.Context, in Submission) (domain.Reservation, error) {
	now := s.now().In(time.Local)
	arrival, err := s.validate(in, startOfDay(now))
	if err != nil {
		observability.ObserveSubmission("invalid")
		return domain.Reservation{}, err
	}

	rec := domain.Reservation{
		LastName:    in.LastName,
		FirstName:   in.FirstName,
		Phone:       in.Phone,
		City:        in.City,
		Profession:  in.Profession,
		NationalID:  in.NationalID,
		RoomPrice:   in.RoomPrice,
		StayDays:    in.StayDays,
		ArrivalDate: arrival,
		TotalAmount: domain.TotalAmount(in.RoomPrice, in.StayDays),
		RecordedAt:  now.Truncate(time.Second),
	}

	ds, err := s.repo.Load(ctx)
	if err != nil {
		observability.ObserveSubmission("error")
		return domain.Reservation{}, fmt.Errorf("load reservations: %w", err)
	}
	if err := s.repo.Save(ctx, ds.Append(rec)); err != nil {
		observability.ObserveSubmission("error")
		return domain.Reservation{}, fmt.Errorf("save reservations: %w", err)
	}

	observability.ObserveSubmission("ok")
	log.Info().
		Int64("room_price", rec.RoomPrice).
		Int("stay_days", rec.StayDays).
		Int64("total_amount", rec.TotalAmount).
		Int("records", ds.Len()+1).
		Msg("reservation recorded")
	return rec, nil
}

// ImportService appends previously exported records to the store in one
// save. Rows are taken as-is, but a row whose price is not offered or whose
// total is not price times days rejects the whole batch.
type ImportService struct {
	repo domain.ReservationRepository
}

func NewImportService(r domain.ReservationRepository) *ImportService {
	return &ImportService{repo: r}
}

func (s *ImportService) Import(ctx context.Context, recs []domain.Reservation) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	for i, r := range recs {
		if err := checkImported(r); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	ds, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load reservations: %w", err)
	}
	for _, r := range recs {
		ds = ds.Append(r)
	}
	if err := s.repo.Save(ctx, ds); err != nil {
		return 0, fmt.Errorf("save reservations: %w", err)
	}
	return len(recs), nil
}

func checkImported(r domain.Reservation) error {
	if !domain.ValidRoomPrice(r.RoomPrice) {
		return fmt.Errorf("%w: room price %d not offered", domain.ErrValidation, r.RoomPrice)
	}
	if want := domain.TotalAmount(r.RoomPrice, r.StayDays); r.TotalAmount != want {
		return fmt.Errorf("%w: total %d, want %d", domain.ErrValidation, r.TotalAmount, want)
	}
	return nil
}
