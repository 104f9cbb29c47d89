package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"valmiki-backend/lib/scrapers/valmiki"
	"valmiki-backend/services/corpus/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/corpus")

const (
	MinKanda = 1
	MaxKanda = 6
	// hard cap for sequential sarga scans, no kanda comes close to it
	MaxSargasPerKanda = 300
)

// Fetcher is the upstream side of the cache, implemented by the valmiki
// scraper client and by mocks in tests.
type Fetcher interface {
	FetchSarga(ctx context.Context, kanda, sarga int, lang valmiki.Language) ([]byte, error)
}

// Service owns the sarga cache and the derived statistics. it is the
// only surface the reading front end talks to, the fetcher and parser
// stay behind it.
type Service struct {
	db      *sql.DB
	qry     *db.Queries
	fetcher Fetcher
	lang    valmiki.Language
}

type ServiceOptions struct {
	// script variant fetched from upstream, defaults to Telugu
	Language valmiki.Language
}

func NewService(database *sql.DB, fetcher Fetcher, opts ServiceOptions) Service {
	lang := opts.Language
	if lang == "" {
		lang = valmiki.LanguageTelugu
	}
	return Service{
		db:      database,
		qry:     db.New(database),
		fetcher: fetcher,
		lang:    lang,
	}
}

// GetSarga is a pure cache lookup, it never touches the network.
func (s Service) GetSarga(ctx context.Context, kanda, sarga int) ([]valmiki.Sloka, bool, error) {
	ctx, span := tracer.Start(ctx, "GetSarga")
	defer span.End()
	span.SetAttributes(attribute.Int("kanda", kanda), attribute.Int("sarga", sarga))

	rows, err := s.qry.GetSargaSlokas(ctx, db.GetSargaSlokasParams{
		Kanda: int64(kanda),
		Sarga: int64(sarga),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	slokas := make([]valmiki.Sloka, len(rows))
	for i, r := range rows {
		gloss := map[string]string{}
		err := json.Unmarshal([]byte(r.GlossJson), &gloss)
		if err != nil {
			slog.WarnContext(ctx, "failed to unmarshal cached gloss",
				"kanda", kanda, "sarga", sarga, "index", r.SlokaIndex, "err", err)
			gloss = map[string]string{}
		}
		slokas[i] = valmiki.Sloka{
			Index:       int(r.SlokaIndex),
			Number:      r.SlokaNum,
			Text:        r.SlokaText,
			Gloss:       gloss,
			Translation: r.Translation,
		}
	}
	return slokas, true, nil
}

// PutSarga replaces whatever records the cache holds for the sarga with
// the given sequence, as one transaction. readers never observe a
// partial sarga and repeated puts of the same records converge.
func (s Service) PutSarga(ctx context.Context, kanda, sarga int, slokas []valmiki.Sloka) error {
	ctx, span := tracer.Start(ctx, "PutSarga")
	defer span.End()
	span.SetAttributes(attribute.Int("kanda", kanda), attribute.Int("sarga", sarga))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteSargaSlokas(ctx, db.DeleteSargaSlokasParams{
		Kanda: int64(kanda),
		Sarga: int64(sarga),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, sloka := range slokas {
		gloss := sloka.Gloss
		if gloss == nil {
			gloss = map[string]string{}
		}
		glossJson, err := json.Marshal(gloss)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		number := sloka.Number
		if number == "" {
			number = fmt.Sprintf("%d.%d.%d", kanda, sarga, sloka.Index)
			slog.WarnContext(ctx, "storing sloka without a number marker",
				"kanda", kanda, "sarga", sarga, "index", sloka.Index)
		}

		err = txqry.CreateSargaSloka(ctx, db.CreateSargaSlokaParams{
			Kanda:       int64(kanda),
			Sarga:       int64(sarga),
			SlokaIndex:  int64(sloka.Index),
			SlokaNum:    number,
			SlokaText:   sloka.Text,
			GlossJson:   string(glossJson),
			Translation: sloka.Translation,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// GetOrFetchSarga serves the sarga from the cache, fetching and parsing
// it from upstream at most once. concurrent callers for the same key
// may fetch redundantly, the replace semantics of PutSarga make that
// wasteful but harmless.
func (s Service) GetOrFetchSarga(ctx context.Context, kanda, sarga int) ([]valmiki.Sloka, error) {
	ctx, span := tracer.Start(ctx, "GetOrFetchSarga")
	defer span.End()
	span.SetAttributes(attribute.Int("kanda", kanda), attribute.Int("sarga", sarga))

	cached, hit, err := s.GetSarga(ctx, kanda, sarga)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	return s.FetchAndStoreSarga(ctx, kanda, sarga)
}

// FetchAndStoreSarga bypasses the cache lookup: it always fetches and
// parses the sarga, validates it and replaces the cached records. the
// batch warm-up uses it to repair partially cached sargas.
func (s Service) FetchAndStoreSarga(ctx context.Context, kanda, sarga int) ([]valmiki.Sloka, error) {
	ctx, span := tracer.Start(ctx, "FetchAndStoreSarga")
	defer span.End()
	span.SetAttributes(attribute.Int("kanda", kanda), attribute.Int("sarga", sarga))

	rawHtml, err := s.fetcher.FetchSarga(ctx, kanda, sarga, s.lang)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	slokas, err := valmiki.ParseSarga(rawHtml)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(slokas) == 0 {
		// zero verses means the sarga does not exist upstream, there
		// is nothing worth persisting
		return nil, nil
	}

	err = validateSlokas(kanda, sarga, slokas)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	err = s.PutSarga(ctx, kanda, sarga, slokas)
	if err != nil {
		return nil, err
	}
	return slokas, nil
}

// validateSlokas checks that the first parsed verse actually belongs to
// the requested sarga. a missing number is only a soft defect, the page
// layout sometimes drops the marker.
func validateSlokas(kanda, sarga int, slokas []valmiki.Sloka) error {
	first := slokas[0]
	if first.Number == "" {
		slog.Warn("first sloka carries no number marker", "kanda", kanda, "sarga", sarga)
		return nil
	}
	prefix := fmt.Sprintf("%d.%d.", kanda, sarga)
	if !strings.HasPrefix(first.Number, prefix) {
		return &valmiki.ValidationError{
			Kanda:  kanda,
			Sarga:  sarga,
			Number: first.Number,
		}
	}
	return nil
}
