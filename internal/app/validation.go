package app

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lasante_hotel/internal/domain"
)

// Submission is the raw form input. TotalAmount and RecordedAt are not part
// of it: both are derived by the service.
type Submission struct {
	LastName    string `json:"last_name" validate:"required,max=50"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"required,max=15"`
	City        string `json:"city" validate:"max=50"`
	Profession  string `json:"profession" validate:"max=50"`
	NationalID  string `json:"national_id" validate:"required,max=20"`
	RoomPrice   int64  `json:"room_price" validate:"room_price"`
	StayDays    int    `json:"stay_days" validate:"min=1,max=365"`
	ArrivalDate string `json:"arrival_date" validate:"required,datetime=2006-01-02"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("room_price", func(fl validator.FieldLevel) bool {
		return domain.ValidRoomPrice(fl.Field().Int())
	})
	return v
}

// validate checks presence and the form's option ranges, and parses the
// arrival date. today is the local calendar day of the request.
func (s *ReservationService) validate(in Submission, today time.Time) (time.Time, error) {
	var fields []string
	if err := s.v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return time.Time{}, err
		}
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}

	var arrival time.Time
	if !contains(fields, "arrival_date") {
		a, err := time.ParseInLocation(domain.DateLayout, in.ArrivalDate, time.Local)
		if err != nil || a.Before(today) {
			fields = append(fields, "arrival_date")
		}
		arrival = a
	}

	if len(fields) > 0 {
		return time.Time{}, &domain.ValidationError{Fields: fields}
	}
	return arrival, nil
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
