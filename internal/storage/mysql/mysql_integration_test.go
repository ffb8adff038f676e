//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"lasante_hotel/internal/domain"
	mysqlrepo "lasante_hotel/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=lasante",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/lasante?charset=utf8mb4&loc=Local",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepo_MySQL_LoadAppendSave(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// first load creates the table and returns an empty dataset
	ds, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 0 {
		t.Fatalf("expected empty dataset, got %d", ds.Len())
	}

	r1 := domain.Reservation{
		LastName:    "Diallo",
		FirstName:   "Awa",
		Phone:       "771234567",
		NationalID:  "CNI001",
		RoomPrice:   8000,
		StayDays:    3,
		ArrivalDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		TotalAmount: 24000,
		RecordedAt:  time.Date(2025, 5, 20, 14, 3, 9, 0, time.Local),
	}
	r2 := r1
	r2.LastName, r2.City, r2.RoomPrice, r2.TotalAmount = "Ndiaye", "Thiès", 12000, 36000

	if err := repo.Save(ctx, ds.Append(r1).Append(r2)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("len=%d", got.Len())
	}
	if !reflect.DeepEqual(got.Records[1].Cells(), r2.Cells()) {
		t.Fatalf("record mismatch:\n got=%v\nwant=%v", got.Records[1].Cells(), r2.Cells())
	}

	// save replaces everything
	if err := repo.Save(ctx, domain.Dataset{}.Append(r2)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = repo.Load(ctx)
	if got.Len() != 1 || got.Records[0].LastName != "Ndiaye" {
		t.Fatalf("unexpected dataset after overwrite: %+v", got.Records)
	}
}
