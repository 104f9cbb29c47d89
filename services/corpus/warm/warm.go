// Package warm builds the sarga cache and statistics for the whole
// corpus ahead of time, so the interactive reader never waits on the
// upstream site. workers operate on disjoint (kanda, sarga) keys and a
// failed key is logged and skipped, never aborting its siblings.
package warm

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"valmiki-backend/services/corpus"
)

type Options struct {
	// parallel workers, defaults to 8
	Workers int
	// kandas to process, defaults to all of 1..6
	Kandas []int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return 8
}

func (o Options) kandas() []int {
	if len(o.Kandas) > 0 {
		return o.Kandas
	}
	all := make([]int, 0, corpus.MaxKanda)
	for k := corpus.MinKanda; k <= corpus.MaxKanda; k++ {
		all = append(all, k)
	}
	return all
}

const (
	storeRetryAttempts = 3
	storeRetryBackoff  = time.Millisecond * 250
)

// sqlite reports writer contention as a busy/locked error, which is the
// one transient condition worth retrying. fetch and validation failures
// are not.
func isLockContention(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}

func withStoreRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		err = op()
		if !isLockContention(err) {
			return err
		}
		select {
		case <-time.After(storeRetryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

type sargaKey struct {
	kanda int
	sarga int
}

func runPool(ctx context.Context, workers int, jobs []sargaKey, work func(ctx context.Context, key sargaKey)) {
	queue := make(chan sargaKey, len(jobs))
	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range queue {
				if ctx.Err() != nil {
					return
				}
				work(ctx, key)
			}
		}()
	}
	wg.Wait()
}

// CountKandas discovers the per-sarga verse counts of the given kandas
// in parallel and records the kanda totals. sargas that already have a
// persisted count are skipped, so reruns only fill in the holes.
func CountKandas(ctx context.Context, svc corpus.Service, opts Options) error {
	for _, kanda := range opts.kandas() {
		existing, err := svc.SargaCounts(ctx, kanda)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			slog.InfoContext(ctx, "reusing persisted sarga counts", "kanda", kanda, "sargas", len(existing))
		}

		var jobs []sargaKey
		for sarga := 1; sarga <= corpus.MaxSargasPerKanda; sarga++ {
			if _, done := existing[sarga]; done {
				continue
			}
			jobs = append(jobs, sargaKey{kanda: kanda, sarga: sarga})
		}

		runPool(ctx, opts.workers(), jobs, func(ctx context.Context, key sargaKey) {
			err := withStoreRetry(ctx, func() error {
				count, err := svc.SargaCount(ctx, key.kanda, key.sarga)
				if err == nil && count > 0 {
					slog.InfoContext(ctx, "counted sarga", "kanda", key.kanda, "sarga", key.sarga, "slokas", count)
				}
				return err
			})
			if err != nil {
				slog.WarnContext(ctx, "failed to count sarga",
					"kanda", key.kanda, "sarga", key.sarga, "err", err)
			}
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		counts, err := svc.SargaCounts(ctx, kanda)
		if err != nil {
			return err
		}
		totalSargas := 0
		totalSlokas := 0
		for sarga, count := range counts {
			if count == 0 {
				continue
			}
			if sarga > totalSargas {
				totalSargas = sarga
			}
			totalSlokas += count
		}
		if totalSargas == 0 {
			slog.WarnContext(ctx, "no sarga counts discovered", "kanda", kanda)
			continue
		}

		err = withStoreRetry(ctx, func() error {
			return svc.RecordKandaTotals(ctx, kanda, totalSargas, totalSlokas)
		})
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "kanda totals recorded",
			"kanda", kanda, "sargas", totalSargas, "slokas", totalSlokas)
	}
	return nil
}

// CacheSargas fetches and stores every sarga listed in the statistics
// that is missing or incomplete in the cache. CountKandas must have run
// first so the statistics know which sargas exist.
func CacheSargas(ctx context.Context, svc corpus.Service, opts Options) error {
	stats, err := svc.ListSargaStats(ctx)
	if err != nil {
		return err
	}

	wanted := map[int]bool{}
	for _, kanda := range opts.kandas() {
		wanted[kanda] = true
	}

	var jobs []sargaKey
	for _, stat := range stats {
		if !wanted[stat.Kanda] || stat.SlokaCount == 0 {
			continue
		}
		cached, err := svc.CachedSlokaCount(ctx, stat.Kanda, stat.Sarga)
		if err != nil {
			return err
		}
		if cached >= stat.SlokaCount {
			continue
		}
		jobs = append(jobs, sargaKey{kanda: stat.Kanda, sarga: stat.Sarga})
	}
	if len(jobs) == 0 {
		slog.InfoContext(ctx, "all sargas are already cached")
		return nil
	}
	slog.InfoContext(ctx, "caching sargas", "pending", len(jobs), "workers", opts.workers())

	runPool(ctx, opts.workers(), jobs, func(ctx context.Context, key sargaKey) {
		var slokas int
		err := withStoreRetry(ctx, func() error {
			parsed, err := svc.FetchAndStoreSarga(ctx, key.kanda, key.sarga)
			slokas = len(parsed)
			return err
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to cache sarga",
				"kanda", key.kanda, "sarga", key.sarga, "err", err)
			return
		}
		slog.InfoContext(ctx, "cached sarga", "kanda", key.kanda, "sarga", key.sarga, "slokas", slokas)
	})
	return ctx.Err()
}
