package corpus

import (
	"context"
	"database/sql"
	"errors"

	"valmiki-backend/services/corpus/db"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RecordSargaCount upserts the verse count for one sarga.
func (s Service) RecordSargaCount(ctx context.Context, kanda, sarga, count int) error {
	return s.qry.UpsertSargaCount(ctx, db.UpsertSargaCountParams{
		Kanda:      int64(kanda),
		Sarga:      int64(sarga),
		SlokaCount: int64(count),
	})
}

// SargaCount returns the verse count of a sarga, deriving and recording
// it through the cache when no stats row exists yet.
func (s Service) SargaCount(ctx context.Context, kanda, sarga int) (int, error) {
	count, err := s.qry.GetSargaCount(ctx, db.GetSargaCountParams{
		Kanda: int64(kanda),
		Sarga: int64(sarga),
	})
	if err == nil {
		return int(count), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	slokas, err := s.GetOrFetchSarga(ctx, kanda, sarga)
	if err != nil {
		return 0, err
	}
	err = s.RecordSargaCount(ctx, kanda, sarga, len(slokas))
	if err != nil {
		return 0, err
	}
	return len(slokas), nil
}

// SargaCounts returns every persisted sarga count of a kanda, keyed by
// sarga number. it never derives missing counts.
func (s Service) SargaCounts(ctx context.Context, kanda int) (map[int]int, error) {
	rows, err := s.qry.ListSargaCounts(ctx, int64(kanda))
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[int(r.Sarga)] = int(r.SlokaCount)
	}
	return counts, nil
}

// SargaStat is one persisted per-sarga verse count.
type SargaStat struct {
	Kanda      int
	Sarga      int
	SlokaCount int
}

func (s Service) ListSargaStats(ctx context.Context) ([]SargaStat, error) {
	rows, err := s.qry.ListSargaStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]SargaStat, len(rows))
	for i, r := range rows {
		stats[i] = SargaStat{
			Kanda:      int(r.Kanda),
			Sarga:      int(r.Sarga),
			SlokaCount: int(r.SlokaCount),
		}
	}
	return stats, nil
}

// CachedSlokaCount reports how many verses of a sarga sit in the cache
// table, used to spot partially warmed sargas.
func (s Service) CachedSlokaCount(ctx context.Context, kanda, sarga int) (int, error) {
	count, err := s.qry.CountCachedSlokas(ctx, db.CountCachedSlokasParams{
		Kanda: int64(kanda),
		Sarga: int64(sarga),
	})
	return int(count), err
}

// RecordKandaTotals upserts the aggregate totals for one kanda.
func (s Service) RecordKandaTotals(ctx context.Context, kanda, totalSargas, totalSlokas int) error {
	return s.qry.UpsertKandaTotals(ctx, db.UpsertKandaTotalsParams{
		Kanda:       int64(kanda),
		TotalSargas: int64(totalSargas),
		TotalSlokas: int64(totalSlokas),
	})
}

// KandaTotal is one persisted kanda aggregate.
type KandaTotal struct {
	Kanda       int
	TotalSargas int
	TotalSlokas int
}

func (s Service) ListKandaTotals(ctx context.Context) ([]KandaTotal, error) {
	rows, err := s.qry.ListKandaTotals(ctx)
	if err != nil {
		return nil, err
	}
	totals := make([]KandaTotal, len(rows))
	for i, r := range rows {
		totals[i] = KandaTotal{
			Kanda:       int(r.Kanda),
			TotalSargas: int(r.TotalSargas),
			TotalSlokas: int(r.TotalSlokas),
		}
	}
	return totals, nil
}

// KandaTotals returns (total sargas, total slokas) for a kanda. when no
// persisted row exists it scans sargas sequentially until one reports
// zero verses, which is taken as the end of the kanda. the corpus is
// assumed gapless, a genuinely missing middle sarga would be misread as
// the boundary.
func (s Service) KandaTotals(ctx context.Context, kanda int) (totalSargas, totalSlokas int, err error) {
	ctx, span := tracer.Start(ctx, "KandaTotals")
	defer span.End()
	span.SetAttributes(attribute.Int("kanda", kanda))

	row, err := s.qry.GetKandaTotals(ctx, int64(kanda))
	if err == nil {
		return int(row.TotalSargas), int(row.TotalSlokas), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, err
	}

	for sarga := 1; sarga <= MaxSargasPerKanda; sarga++ {
		count, err := s.SargaCount(ctx, kanda, sarga)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return 0, 0, err
		}
		if count == 0 {
			break
		}
		totalSargas = sarga
		totalSlokas += count
	}

	err = s.qry.UpsertKandaTotals(ctx, db.UpsertKandaTotalsParams{
		Kanda:       int64(kanda),
		TotalSargas: int64(totalSargas),
		TotalSlokas: int64(totalSlokas),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, err
	}
	return totalSargas, totalSlokas, nil
}

// ProgressInKanda is the number of slokas read once the reader stands
// on the given (sarga, slokaIndex) position: the counts of all sargas
// before it plus the index within the current one. (kanda, 1, 0) is 0
// and the value is strictly increasing as the position advances.
func (s Service) ProgressInKanda(ctx context.Context, kanda, sarga, slokaIndex int) (int, error) {
	// materialize any missing counts so the prefix sum is complete
	for prev := 1; prev < sarga; prev++ {
		_, err := s.SargaCount(ctx, kanda, prev)
		if err != nil {
			return 0, err
		}
	}

	sum, err := s.qry.SumSargaCountsBefore(ctx, db.SumSargaCountsBeforeParams{
		Kanda: int64(kanda),
		Sarga: int64(sarga),
	})
	if err != nil {
		return 0, err
	}
	return int(sum) + slokaIndex, nil
}

// ProgressInCorpus extends ProgressInKanda across the kandas before the
// given one.
func (s Service) ProgressInCorpus(ctx context.Context, kanda, sarga, slokaIndex int) (int, error) {
	total := 0
	for prev := MinKanda; prev < kanda; prev++ {
		_, slokas, err := s.KandaTotals(ctx, prev)
		if err != nil {
			return 0, err
		}
		total += slokas
	}

	within, err := s.ProgressInKanda(ctx, kanda, sarga, slokaIndex)
	if err != nil {
		return 0, err
	}
	return total + within, nil
}
