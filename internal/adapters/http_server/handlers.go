package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lasante_hotel/internal/app"
	"lasante_hotel/internal/domain"
)

// Submitter is the write path; *app.ReservationService satisfies it.
type Submitter interface {
	Submit(ctx context.Context, in app.Submission) (domain.Reservation, error)
}

type Handlers struct {
	C Submitter
	Q *app.QueryService

	// SubmitRPS caps POST /v1/reservations; 0 disables the limit.
	SubmitRPS int
}

type problem struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Status int      `json:"status"`
	Detail string   `json:"detail,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type reservationJSON struct {
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Profession  string `json:"profession"`
	NationalID  string `json:"national_id"`
	RoomPrice   int64  `json:"room_price"`
	StayDays    int    `json:"stay_days"`
	ArrivalDate string `json:"arrival_date"`
	TotalAmount int64  `json:"total_amount"`
	RecordedAt  string `json:"recorded_at"`
}

func toJSON(r domain.Reservation) reservationJSON {
	return reservationJSON{
		LastName:    r.LastName,
		FirstName:   r.FirstName,
		Phone:       r.Phone,
		City:        r.City,
		Profession:  r.Profession,
		NationalID:  r.NationalID,
		RoomPrice:   r.RoomPrice,
		StayDays:    r.StayDays,
		ArrivalDate: r.ArrivalDate.Format(domain.DateLayout),
		TotalAmount: r.TotalAmount,
		RecordedAt:  r.RecordedAt.Format(domain.TimestampLayout),
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/options", h.options)
	s.mux.Get("/v1/quote", h.quote)
	s.mux.Route("/v1/reservations", func(r chi.Router) {
		r.With(RateLimit(h.SubmitRPS)).Post("/", h.submit)
		r.Get("/summary", h.summary)
		r.Get("/recent", h.recent)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, fields ...string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Fields: fields}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps service errors to problems. Store failures are logged here
// and reported without internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid reservation",
			"required fields missing or values outside the allowed options", verr.Fields...)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Request aborted", "request canceled or timed out")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("reservation store failure")
		if errors.Is(err, domain.ErrCorruptStore) {
			writeProblem(w, http.StatusInternalServerError, "Storage unreadable", "the reservation file could not be read")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Storage error", "the reservation could not be stored")
	}
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"room_prices":     domain.RoomPrices,
		"min_stay_days":   domain.MinStayDays,
		"max_stay_days":   domain.MaxStayDays,
		"currency":        domain.Currency,
		"required_fields": []string{"last_name", "first_name", "phone", "national_id"},
	})
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseInt(r.URL.Query().Get("room_price"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid room_price", "room_price must be an integer")
		return
	}
	days := domain.MinStayDays
	if ds := r.URL.Query().Get("stay_days"); ds != "" {
		if days, err = strconv.Atoi(ds); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid stay_days", "stay_days must be an integer")
			return
		}
	}
	q, err := app.Quote(price, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_price":   q.RoomPrice,
		"stay_days":    q.StayDays,
		"total_amount": q.TotalAmount,
		"currency":     domain.Currency,
	})
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request) {
	var in app.Submission
	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed body", err.Error())
		return
	}
	rec, err := h.C.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSON(rec))
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Q.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    s.Count,
		"revenue":  s.Revenue,
		"currency": domain.Currency,
	})
}

func (h *Handlers) recent(w http.ResponseWriter, r *http.Request) {
	page, err := h.Q.Recent(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	items := make([]reservationJSON, 0, len(page.Items))
	for _, it := range page.Items {
		items = append(items, toJSON(it))
	}
	body := map[string]any{"items": items, "empty": page.Empty}
	if page.Empty {
		body["message"] = "no reservations recorded"
	}
	writeJSON(w, http.StatusOK, body)
}
