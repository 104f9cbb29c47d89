package warm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"valmiki-backend/lib/scrapers/valmiki"
	"valmiki-backend/lib/testutil"
	"valmiki-backend/services/corpus"
	"valmiki-backend/services/corpus/db"

	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	// per-kanda sloka counts, index 0 is sarga 1
	kandas map[int][]int
	// sargas that permanently fail, "kanda.sarga"
	broken map[string]bool
	calls  atomic.Int64
}

func (f *fakeUpstream) FetchSarga(ctx context.Context, kanda, sarga int, lang valmiki.Language) ([]byte, error) {
	f.calls.Add(1)
	if f.broken[fmt.Sprintf("%d.%d", kanda, sarga)] {
		return nil, &valmiki.FetchError{Kanda: kanda, Sarga: sarga, Lang: lang, StatusCode: 502}
	}

	counts := f.kandas[kanda]
	if sarga < 1 || sarga > len(counts) {
		return []byte(`<div class="view-content"></div>`), nil
	}

	var sb strings.Builder
	sb.WriteString(`<div class="view-content">`)
	for i := 1; i <= counts[sarga-1]; i++ {
		fmt.Fprintf(&sb, `
			<div class="views-row">
				<div class="views-field views-field-body"><div class="field-content">
					<p>verse body %d৷৷%d.%d.%d৷৷</p>
				</div></div>
				<div class="views-field views-field-field-htetrans"><div class="field-content"></div></div>
				<div class="views-field views-field-field-explanation"><div class="field-content">meaning %d</div></div>
			</div>`,
			i, kanda, sarga, i, i)
	}
	sb.WriteString(`</div>`)
	return []byte(sb.String()), nil
}

func setupWarm(t *testing.T, upstream corpus.Fetcher) (corpus.Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/corpus/warm",
		DbSchema: db.Schema,
		// worker goroutines share the database, :memory: would hand
		// each connection its own copy
		DbPath: filepath.Join(t.TempDir(), "warm.db"),
	})
	return corpus.NewService(setup.DB, upstream, corpus.ServiceOptions{}), cleanup
}

func TestWithStoreRetryOnLockContention(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	err := withStoreRetry(ctx, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)

	// a writer that never wins stops after the attempt budget
	attempts = 0
	err = withStoreRetry(ctx, func() error {
		attempts++
		return errors.New("database is locked (SQLITE_BUSY)")
	})
	require.Error(t, err)
	require.Equal(t, 3, attempts)
}

func TestWithStoreRetryPassesThroughUpstreamErrors(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	err := withStoreRetry(ctx, func() error {
		attempts++
		return &valmiki.FetchError{Kanda: 1, Sarga: 2, Lang: valmiki.LanguageTelugu, StatusCode: 502}
	})
	var fetchErr *valmiki.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, 1, attempts)

	attempts = 0
	err = withStoreRetry(ctx, func() error {
		attempts++
		return &valmiki.ValidationError{Kanda: 1, Sarga: 2, Number: "3.4.1"}
	})
	var validationErr *valmiki.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, 1, attempts)
}

func TestCountKandas(t *testing.T) {
	upstream := &fakeUpstream{kandas: map[int][]int{
		1: {2, 3, 1},
	}}
	svc, cleanup := setupWarm(t, upstream)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := CountKandas(ctx, svc, Options{Kandas: []int{1}, Workers: 4})
	require.NoError(t, err)

	counts, err := svc.SargaCounts(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, counts[1])
	require.Equal(t, 3, counts[2])
	require.Equal(t, 1, counts[3])
	require.Equal(t, 0, counts[4])

	sargas, slokas, err := svc.KandaTotals(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 3, sargas)
	require.Equal(t, 6, slokas)

	// a rerun reuses the persisted counts instead of refetching
	fetched := upstream.calls.Load()
	err = CountKandas(ctx, svc, Options{Kandas: []int{1}, Workers: 4})
	require.NoError(t, err)
	require.Equal(t, fetched, upstream.calls.Load())
}

func TestCacheSargas(t *testing.T) {
	upstream := &fakeUpstream{kandas: map[int][]int{
		1: {2, 3, 1},
	}}
	svc, cleanup := setupWarm(t, upstream)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, CountKandas(ctx, svc, Options{Kandas: []int{1}, Workers: 4}))

	// knock out one cached sarga to simulate a partial warm-up
	require.NoError(t, svc.PutSarga(ctx, 1, 2, nil))
	cached, err := svc.CachedSlokaCount(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 0, cached)

	require.NoError(t, CacheSargas(ctx, svc, Options{Kandas: []int{1}, Workers: 2}))

	cached, err = svc.CachedSlokaCount(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, cached)

	slokas, hit, err := svc.GetSarga(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, slokas, 3)
	require.Equal(t, "1.2.1", slokas[0].Number)
}

func TestCacheSargasSkipsFailingKeys(t *testing.T) {
	upstream := &fakeUpstream{
		kandas: map[int][]int{1: {2, 3}},
		broken: map[string]bool{},
	}
	svc, cleanup := setupWarm(t, upstream)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, CountKandas(ctx, svc, Options{Kandas: []int{1}, Workers: 4}))
	require.NoError(t, svc.PutSarga(ctx, 1, 1, nil))
	require.NoError(t, svc.PutSarga(ctx, 1, 2, nil))

	// sarga 1 now fails upstream, sarga 2 must still be repaired
	upstream.broken["1.1"] = true

	require.NoError(t, CacheSargas(ctx, svc, Options{Kandas: []int{1}, Workers: 2}))

	cached, err := svc.CachedSlokaCount(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 0, cached)

	cached, err = svc.CachedSlokaCount(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, cached)
}
