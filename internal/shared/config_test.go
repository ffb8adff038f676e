package shared_test

import (
	"testing"

	"lasante_hotel/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_BACKEND", "XLSX_PATH", "RECENT_LIMIT", "SUBMIT_RPS"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.StoreBackend != shared.BackendXLSX || c.XLSXPath != "RESERVATIONS.xlsx" {
		t.Fatalf("unexpected store defaults: %+v", c)
	}
	if c.RecentLimit != 5 || c.SubmitRPS != 5 {
		t.Fatalf("unexpected numeric defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("RECENT_LIMIT", "10")
	t.Setenv("SUBMIT_RPS", "not-a-number")
	c := shared.Load()
	if c.StoreBackend != shared.BackendRedis {
		t.Fatalf("backend=%s", c.StoreBackend)
	}
	if c.RecentLimit != 10 || c.SubmitRPS != 5 {
		t.Fatalf("limits: %+v", c)
	}
}

func TestLoad_UnknownBackendFallsBack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "csv")
	if c := shared.Load(); c.StoreBackend != shared.BackendXLSX {
		t.Fatalf("backend=%s", c.StoreBackend)
	}
}
