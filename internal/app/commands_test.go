package app_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"lasante_hotel/internal/app"
	"lasante_hotel/internal/domain"
)

var fixedNow = time.Date(2025, 5, 20, 14, 3, 9, 500_000_000, time.Local)

func clock() time.Time { return fixedNow }

func diallo() app.Submission {
	return app.Submission{
		LastName:    "Diallo",
		FirstName:   "Awa",
		Phone:       "771234567",
		NationalID:  "CNI001",
		RoomPrice:   8000,
		StayDays:    3,
		ArrivalDate: "2025-06-01",
	}
}

func TestSubmit_Example(t *testing.T) {
	repo := &fakeRepo{}
	repo.ds = repo.ds.Append(rec("Existing", 7000))
	svc := app.NewReservationService(repo, clock)

	got, err := svc.Submit(context.Background(), diallo())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.TotalAmount != 24000 {
		t.Fatalf("total=%d want 24000", got.TotalAmount)
	}
	if !got.RecordedAt.Equal(fixedNow.Truncate(time.Second)) {
		t.Fatalf("recorded_at=%v", got.RecordedAt)
	}
	if got.ArrivalDate.Format(domain.DateLayout) != "2025-06-01" {
		t.Fatalf("arrival=%v", got.ArrivalDate)
	}
	if repo.ds.Len() != 2 || repo.saves != 1 {
		t.Fatalf("expected exactly one appended record, len=%d saves=%d", repo.ds.Len(), repo.saves)
	}
	if repo.ds.Records[0].LastName != "Existing" || repo.ds.Records[1].LastName != "Diallo" {
		t.Fatalf("unexpected order: %+v", repo.ds.Records)
	}
}

func TestSubmit_RequiredFields(t *testing.T) {
	cases := map[string]func(*app.Submission){
		"last_name":   func(s *app.Submission) { s.LastName = "" },
		"first_name":  func(s *app.Submission) { s.FirstName = "" },
		"phone":       func(s *app.Submission) { s.Phone = "" },
		"national_id": func(s *app.Submission) { s.NationalID = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := app.NewReservationService(repo, clock)
			in := diallo()
			mutate(&in)

			_, err := svc.Submit(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0] != field {
				t.Fatalf("expected field %s, got %v", field, err)
			}
			if repo.saves != 0 || repo.ds.Len() != 0 {
				t.Fatalf("dataset must stay unchanged")
			}
		})
	}
}

func TestSubmit_OptionalFieldsMayBeEmpty(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewReservationService(repo, clock)
	in := diallo()
	in.City, in.Profession = "", ""
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestSubmit_OptionRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*app.Submission)
		field  string
	}{
		{"price not offered", func(s *app.Submission) { s.RoomPrice = 9000 }, "room_price"},
		{"zero days", func(s *app.Submission) { s.StayDays = 0 }, "stay_days"},
		{"too many days", func(s *app.Submission) { s.StayDays = 366 }, "stay_days"},
		{"arrival in the past", func(s *app.Submission) { s.ArrivalDate = "2025-05-19" }, "arrival_date"},
		{"bad date", func(s *app.Submission) { s.ArrivalDate = "01/06/2025" }, "arrival_date"},
		{"missing date", func(s *app.Submission) { s.ArrivalDate = "" }, "arrival_date"},
		{"last name too long", func(s *app.Submission) { s.LastName = strings.Repeat("D", 51) }, "last_name"},
		{"first name too long", func(s *app.Submission) { s.FirstName = strings.Repeat("A", 80) }, "first_name"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := app.NewReservationService(repo, clock)
			in := diallo()
			c.mutate(&in)
			_, err := svc.Submit(context.Background(), in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			sort.Strings(verr.Fields)
			if len(verr.Fields) != 1 || verr.Fields[0] != c.field {
				t.Fatalf("fields=%v want [%s]", verr.Fields, c.field)
			}
			if repo.saves != 0 {
				t.Fatalf("nothing should be saved")
			}
		})
	}
}

func TestSubmit_ArrivalToday(t *testing.T) {
	svc := app.NewReservationService(&fakeRepo{}, clock)
	in := diallo()
	in.ArrivalDate = fixedNow.Format(domain.DateLayout)
	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Fatalf("arrival today should be accepted: %v", err)
	}
}

func TestSubmit_NSubmissionsInOrder(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewReservationService(repo, clock)

	const n = 12
	var first domain.Reservation
	for i := 0; i < n; i++ {
		in := diallo()
		in.LastName = fmt.Sprintf("Guest%02d", i)
		in.StayDays = i + 1
		r, err := svc.Submit(context.Background(), in)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if i == 0 {
			first = r
		}
	}
	if repo.ds.Len() != n {
		t.Fatalf("len=%d want %d", repo.ds.Len(), n)
	}
	for i, r := range repo.ds.Records {
		if r.LastName != fmt.Sprintf("Guest%02d", i) {
			t.Fatalf("record %d out of order: %s", i, r.LastName)
		}
		if r.TotalAmount != domain.TotalAmount(r.RoomPrice, r.StayDays) {
			t.Fatalf("record %d total mismatch", i)
		}
	}
	if repo.ds.Records[0] != first {
		t.Fatalf("first record altered: %+v vs %+v", repo.ds.Records[0], first)
	}
}

func TestSubmit_StoreFailures(t *testing.T) {
	boom := errors.New("disk full")

	repo := &fakeRepo{loadErr: domain.ErrCorruptStore}
	if _, err := app.NewReservationService(repo, clock).Submit(context.Background(), diallo()); !errors.Is(err, domain.ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("must not save after a failed load")
	}

	repo = &fakeRepo{saveErr: boom}
	if _, err := app.NewReservationService(repo, clock).Submit(context.Background(), diallo()); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestImport(t *testing.T) {
	repo := &fakeRepo{}
	repo.ds = repo.ds.Append(rec("A", 7000))
	imp := app.NewImportService(repo)

	n, err := imp.Import(context.Background(), []domain.Reservation{rec("B", 8000), rec("C", 12000)})
	if err != nil || n != 2 {
		t.Fatalf("Import: n=%d err=%v", n, err)
	}
	if repo.ds.Len() != 3 || repo.ds.Records[2].LastName != "C" || repo.saves != 1 {
		t.Fatalf("unexpected dataset: %+v (saves=%d)", repo.ds.Records, repo.saves)
	}

	if n, err := imp.Import(context.Background(), nil); err != nil || n != 0 || repo.saves != 1 {
		t.Fatalf("empty import should be a no-op")
	}
}

func TestImport_RejectsInconsistentRows(t *testing.T) {
	badTotal := rec("B", 8000)
	badTotal.StayDays = 3
	badPrice := rec("C", 9000)

	for name, r := range map[string]domain.Reservation{"total": badTotal, "price": badPrice} {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{}
			_, err := app.NewImportService(repo).Import(context.Background(), []domain.Reservation{rec("A", 7000), r})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if repo.saves != 0 || repo.loads != 0 {
				t.Fatalf("nothing should be touched (loads=%d saves=%d)", repo.loads, repo.saves)
			}
		})
	}
}
