package app

import (
	"context"
	"fmt"

	"lasante_hotel/internal/domain"
)

// QueryService serves the read path. Every call loads the full dataset.
type QueryService struct {
	repo        domain.ReservationRepository
	recentLimit int
}

func NewQueryService(r domain.ReservationRepository, recentLimit int) *QueryService {
	if recentLimit <= 0 {
		recentLimit = domain.RecentLimit
	}
	return &QueryService{repo: r, recentLimit: recentLimit}
}

func (s *QueryService) Summary(ctx context.Context) (domain.Summary, error) {
	ds, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load reservations: %w", err)
	}
	return domain.Summary{Count: ds.Len(), Revenue: ds.Revenue()}, nil
}

func (s *QueryService) Recent(ctx context.Context) (domain.RecentPage, error) {
	ds, err := s.repo.Load(ctx)
	if err != nil {
		return domain.RecentPage{}, fmt.Errorf("load reservations: %w", err)
	}
	items := ds.Tail(s.recentLimit)
	return domain.RecentPage{Items: items, Empty: len(items) == 0}, nil
}

// Quote prices a stay without touching the store.
func Quote(roomPrice int64, stayDays int) (domain.Quote, error) {
	var fields []string
	if !domain.ValidRoomPrice(roomPrice) {
		fields = append(fields, "room_price")
	}
	if stayDays < domain.MinStayDays || stayDays > domain.MaxStayDays {
		fields = append(fields, "stay_days")
	}
	if len(fields) > 0 {
		return domain.Quote{}, &domain.ValidationError{Fields: fields}
	}
	return domain.Quote{
		RoomPrice:   roomPrice,
		StayDays:    stayDays,
		TotalAmount: domain.TotalAmount(roomPrice, stayDays),
	}, nil
}
