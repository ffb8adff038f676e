package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lasante_hotel/internal/adapters/observability"
	"lasante_hotel/internal/domain"
)

const backend = "redis"

// Store keeps the dataset under two keys: <key>:columns holds the header as
// a JSON array and <key> is a list with one JSON array of cells per record.
type Store struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key)
}

func NewWithClient(c *redis.Client, key string) *Store {
	return &Store{c: c, key: key}
}

func (s *Store) Close() error { return s.c.Close() }

func (s *Store) columnsKey() string { return s.key + ":columns" }

func (s *Store) Load(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	hdr, err := s.c.Get(ctx, s.columnsKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		// records without a header mean the store was damaged, not unused
		n, xerr := s.c.Exists(ctx, s.key).Result()
		if xerr != nil {
			observability.ObserveStore(backend, "load", xerr, time.Since(start))
			return domain.Dataset{}, xerr
		}
		if n > 0 {
			err = fmt.Errorf("%w: %s missing", domain.ErrCorruptStore, s.columnsKey())
			observability.ObserveStore(backend, "load", err, time.Since(start))
			return domain.Dataset{}, err
		}
		err = s.write(ctx, domain.Dataset{})
		observability.ObserveStore(backend, "init", err, time.Since(start))
		return domain.Dataset{}, err
	}
	if err != nil {
		observability.ObserveStore(backend, "load", err, time.Since(start))
		return domain.Dataset{}, err
	}

	ds, err := s.decode(ctx, hdr)
	observability.ObserveStore(backend, "load", err, time.Since(start))
	return ds, err
}

func (s *Store) decode(ctx context.Context, hdr []byte) (domain.Dataset, error) {
	var header []string
	if err := json.Unmarshal(hdr, &header); err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, s.columnsKey(), err)
	}
	if err := domain.CheckHeader(header); err != nil {
		return domain.Dataset{}, err
	}

	items, err := s.c.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return domain.Dataset{}, err
	}
	recs := make([]domain.Reservation, 0, len(items))
	for i, it := range items {
		var cells []string
		if err := json.Unmarshal([]byte(it), &cells); err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: %s[%d]: %v", domain.ErrCorruptStore, s.key, i, err)
		}
		rec, err := domain.ParseRow(cells)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("%s[%d]: %w", s.key, i, err)
		}
		recs = append(recs, rec)
	}
	return domain.Dataset{Records: recs}, nil
}

// Save rewrites both keys in one MULTI/EXEC block.
func (s *Store) Save(ctx context.Context, d domain.Dataset) error {
	start := time.Now()
	err := s.write(ctx, d)
	observability.ObserveStore(backend, "save", err, time.Since(start))
	return err
}

func (s *Store) write(ctx context.Context, d domain.Dataset) error {
	hdr, err := json.Marshal(domain.Columns)
	if err != nil {
		return err
	}
	rows := make([]any, 0, len(d.Records))
	for _, r := range d.Records {
		b, err := json.Marshal(r.Cells())
		if err != nil {
			return err
		}
		rows = append(rows, string(b))
	}

	_, err = s.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.key)
		p.Set(ctx, s.columnsKey(), hdr, 0)
		if len(rows) > 0 {
			p.RPush(ctx, s.key, rows...)
		}
		return nil
	})
	return err
}
