// Command importer appends the rows of legacy RESERVATIONS.xlsx exports to
// the configured reservation store.
//
//	importer old-1.xlsx old-2.xlsx
//
// Files are read in parallel and appended in argument order with one save.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"lasante_hotel/internal/adapters/observability"
	"lasante_hotel/internal/app"
	"lasante_hotel/internal/domain"
	"lasante_hotel/internal/shared"
	"lasante_hotel/internal/storage"
	"lasante_hotel/internal/storage/xlsx"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	files := os.Args[1:]
	if len(files) == 0 {
		log.Fatal().Msg("usage: importer FILE.xlsx [FILE.xlsx ...]")
	}
	log.Info().
		Str("backend", cfg.StoreBackend).
		Int("workers", cfg.ImportWorkers).
		Int("files", len(files)).
		Msg("importer starting")

	repo, closeStore, err := storage.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open reservation store failed")
	}

	n, err := importFiles(ctx, repo, files, cfg.ImportWorkers)
	if cerr := closeStore(); cerr != nil {
		log.Warn().Err(cerr).Msg("close reservation store")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("import failed, nothing imported")
	}
	log.Info().Int("imported", n).Msg("import completed")
}

// importFiles reads every file with at most workers in flight, then appends
// all rows with a single save. Any read error aborts before the store is
// touched.
func importFiles(ctx context.Context, repo domain.ReservationRepository, files []string, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	results := make([][]domain.Reservation, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup

	for i, path := range files {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, fmt.Errorf("semaphore acquire: %w", err)
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.Release(1)

			ds, err := xlsx.ReadFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = ds.Records
			log.Info().Str("file", path).Int("rows", ds.Len()).Msg("read ok")
		}(i, path)
	}
	wg.Wait()

	var recs []domain.Reservation
	for i, path := range files {
		if errs[i] != nil {
			return 0, fmt.Errorf("%s: %w", path, errs[i])
		}
		recs = append(recs, results[i]...)
	}
	return app.NewImportService(repo).Import(ctx, recs)
}
