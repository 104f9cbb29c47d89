package valmiki

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"time"

	"valmiki-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/valmiki")

// Language is the script variant requested from the upstream site.
type Language string

const (
	LanguageTelugu     Language = "te"
	LanguageDevanagari Language = "dv"
)

func (l Language) Valid() bool {
	return l == LanguageTelugu || l == LanguageDevanagari
}

const DefaultBaseUrl = "https://www.valmiki.iitk.ac.in"

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// overrides the upstream base url, used by tests
	BaseUrl string
}

func NewClient(opts ClientOptions) Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, _ := cookiejar.New(nil)
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/valmiki/http")

	return Client{http: client}
}

// FetchSarga downloads the raw html for one sarga page. it does no
// caching, that is layered on top by services/corpus.
func (c Client) FetchSarga(ctx context.Context, kanda, sarga int, lang Language) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:FetchSarga")
	defer span.End()
	span.SetAttributes(
		attribute.Int("kanda", kanda),
		attribute.Int("sarga", sarga),
		attribute.String("lang", string(lang)),
	)

	if !lang.Valid() {
		err := fmt.Errorf("unsupported language code %q", lang)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("field_kanda_tid", strconv.Itoa(kanda)).
		SetQueryParam("language", string(lang)).
		SetQueryParam("field_sarga_value", strconv.Itoa(sarga)).
		Get("/sloka")
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return nil, &FetchError{Kanda: kanda, Sarga: sarga, Lang: lang, cause: err}
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return nil, &FetchError{
			Kanda:      kanda,
			Sarga:      sarga,
			Lang:       lang,
			StatusCode: res.StatusCode(),
		}
	}

	return res.Body(), nil
}
