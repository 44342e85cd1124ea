package deaths

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pion/logging"
)

// DefaultURL is the public COVID-19 mortality dataset of the Czech Ministry
// of Health.
const DefaultURL = "https://onemocneni-aktualne.mzcr.cz/api/v2/covid-19/umrti.csv"

// ErrUnexpectedStatus is returned when the dataset server answers with a
// non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// SourceOption is a functional option for a Source.
type SourceOption func(*Source) error

// WithHTTPClient sets the client used to download the dataset.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *Source) error {
		if c == nil {
			return errors.New("nil HTTP client")
		}
		s.client = c

		return nil
	}
}

// WithURL overrides the dataset location.
func WithURL(url string) SourceOption {
	return func(s *Source) error {
		s.url = url

		return nil
	}
}

// WithCSVOptions overrides how the downloaded CSV is parsed.
func WithCSVOptions(opts *CSVOptions) SourceOption {
	return func(s *Source) error {
		s.csv = opts

		return nil
	}
}

// WithLoggerFactory configures a custom logger factory for a Source.
func WithLoggerFactory(lf logging.LoggerFactory) SourceOption {
	return func(s *Source) error {
		s.logFactory = lf

		return nil
	}
}

// Source downloads death records over HTTP.
type Source struct {
	client     *http.Client
	url        string
	csv        *CSVOptions
	logFactory logging.LoggerFactory
	log        logging.LeveledLogger
}

// NewSource creates a Source for DefaultURL unless configured otherwise.
func NewSource(opts ...SourceOption) (*Source, error) {
	s := &Source{
		client:     http.DefaultClient,
		url:        DefaultURL,
		csv:        DefaultCSVOptions(),
		logFactory: logging.NewDefaultLoggerFactory(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.log = s.logFactory.NewLogger("deaths_source")

	return s, nil
}

// URL returns the dataset location.
func (s *Source) URL() string {
	return s.url
}

// Fetch downloads and parses the dataset. It is not retried on failure.
func (s *Source) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	s.log.Debugf("fetching %s", s.url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", s.url, ErrUnexpectedStatus, resp.Status)
	}

	records, err := LoadCSVFromReader(resp.Body, s.csv)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.url, err)
	}
	s.log.Infof("fetched %d records from %s", len(records), s.url)

	return records, nil
}
