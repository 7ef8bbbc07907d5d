package wholesale

import (
	"context"
	"errors"

	"github.com/hkopenai/hk-food-mcp-server/internal/platform/requestctx"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSourceURL is the AFCD publication of daily wholesale prices.
const DefaultSourceURL = "https://www.afcd.gov.hk/english/agriculture/agr_fresh/files/Wholesale_Prices.csv"

// ErrorResultType tags ErrorResult payloads.
const ErrorResultType = "Error"

var tracer = otel.Tracer("github.com/hkopenai/hk-food-mcp-server/internal/services/food/wholesale")

// Query carries the caller's filter and language selection. Blank dates are
// open bounds; a blank language selects English.
type Query struct {
	StartDate string
	EndDate   string
	Language  string
}

// ErrorResult is the structured value returned when the source cannot be
// fetched, so the protocol layer can serialize it instead of failing.
type ErrorResult struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Result holds either the projected records or a fetch failure.
type Result struct {
	Records []OutputRecord
	Error   *ErrorResult
}

// Service answers wholesale price queries. It keeps no state between calls
// and is safe for concurrent use.
type Service struct {
	fetcher   Fetcher
	sourceURL string
}

// Option customises a Service.
type Option func(*Service)

// WithSourceURL overrides the CSV location.
func WithSourceURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.sourceURL = url
		}
	}
}

// NewService builds a Service reading through fetcher.
func NewService(fetcher Fetcher, opts ...Option) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	s := &Service{fetcher: fetcher, sourceURL: DefaultSourceURL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SourceURL reports where the service fetches prices from.
func (s *Service) SourceURL() string {
	return s.sourceURL
}

// GetWholesalePrices fetches the price table, keeps rows inside the
// requested revision-date window and projects them into the requested
// language, preserving source order.
//
// Caller misuse (unknown language, malformed bound) is returned as an error
// before any fetch. A fetch failure is returned as Result.Error with a nil
// error and no filtering or projection takes place. A malformed revision
// date in the data fails the whole request with a ParseError.
func (s *Service) GetWholesalePrices(ctx context.Context, q Query) (Result, error) {
	ctx, span := tracer.Start(ctx, "wholesale.GetWholesalePrices", trace.WithAttributes(
		attribute.String("wholesale.start_date", q.StartDate),
		attribute.String("wholesale.end_date", q.EndDate),
		attribute.String("wholesale.language", q.Language),
	))
	defer span.End()

	logger := log.With().Str("invocation_id", requestctx.InvocationIDFromContext(ctx)).Logger()

	lang, err := ParseLanguage(q.Language)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	window, err := ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	rows, err := s.fetchRows(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("url", s.sourceURL).Msg("wholesale prices fetch failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Result{Error: &ErrorResult{Type: ErrorResultType, Error: err.Error()}}, nil
	}

	filtered, err := window.Filter(rows)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	records, err := ProjectAll(filtered, lang)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Int("wholesale.rows_fetched", len(rows)),
		attribute.Int("wholesale.rows_returned", len(records)),
	)
	logger.Debug().
		Int("fetched", len(rows)).
		Int("returned", len(records)).
		Str("language", string(lang)).
		Msg("wholesale prices served")
	return Result{Records: records}, nil
}

func (s *Service) fetchRows(ctx context.Context) ([]RawRow, error) {
	records, err := s.fetcher.FetchRecords(ctx, s.sourceURL)
	if err != nil {
		return nil, &FetchError{URL: s.sourceURL, Err: err}
	}
	rows, err := ParseRawRows(records)
	if err != nil {
		return nil, &FetchError{URL: s.sourceURL, Err: err}
	}
	return rows, nil
}
