package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lasante_hotel/internal/domain"
	"lasante_hotel/internal/storage/xlsx"
)

func legacy(t *testing.T, dir, name string, lastNames ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var ds domain.Dataset
	for _, n := range lastNames {
		ds = ds.Append(domain.Reservation{
			LastName: n, FirstName: "Awa", Phone: "771234567", NationalID: "CNI001",
			RoomPrice: 10000, StayDays: 2, TotalAmount: 20000,
			ArrivalDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
			RecordedAt:  time.Date(2024, 2, 20, 8, 30, 0, 0, time.Local),
		})
	}
	if err := xlsx.New(path).Save(context.Background(), ds); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportFiles_ArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := legacy(t, dir, "a.xlsx", "A1", "A2")
	b := legacy(t, dir, "b.xlsx", "B1")
	store := xlsx.New(filepath.Join(dir, "RESERVATIONS.xlsx"))

	n, err := importFiles(context.Background(), store, []string{a, b}, 2)
	if err != nil || n != 3 {
		t.Fatalf("importFiles: n=%d err=%v", n, err)
	}
	ds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, want := range []string{"A1", "A2", "B1"} {
		if ds.Records[i].LastName != want {
			t.Fatalf("record %d = %s, want %s", i, ds.Records[i].LastName, want)
		}
	}
}

func TestImportFiles_BadFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := legacy(t, dir, "a.xlsx", "A1")
	storePath := filepath.Join(dir, "RESERVATIONS.xlsx")
	store := xlsx.New(storePath)

	if _, err := importFiles(context.Background(), store, []string{a, filepath.Join(dir, "missing.xlsx")}, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
	ds, err := xlsx.ReadFile(storePath)
	if err == nil && ds.Len() != 0 {
		t.Fatalf("store written despite failure: %d records", ds.Len())
	}
}
