package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yellowsense/jobswipe/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=job_fetcher.go -destination=mock_page_fetcher_test.go -package=services

// PageFetcher returns the jobs on one page of the listing.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]models.JobRecord, error)
}

const maxResponseBytes = 8 << 20

// JobFetcher talks to the public jobs API. It never retries.
type JobFetcher struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewJobFetcher builds a fetcher for baseURL. A ratePerSecond <= 0 disables
// rate limiting.
func NewJobFetcher(baseURL string, timeout time.Duration, ratePerSecond float64) *JobFetcher {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &JobFetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *JobFetcher) FetchPage(ctx context.Context, page int) ([]models.JobRecord, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Reason: "page must be positive"}
	}

	pageURL, err := f.pageURL(page)
	if err != nil {
		return nil, &FetchError{Page: page, Reason: "invalid jobs API url", Err: err}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Page: page, Reason: "request cancelled", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{Page: page, Reason: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Page: page, Reason: requestFailureReason(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Page: page, Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{Page: page, Reason: "failed to read response", Err: err}
	}

	jobs, err := decodeResults(body)
	if err != nil {
		return nil, &FetchError{Page: page, Reason: "malformed response", Err: err}
	}
	return jobs, nil
}

func (f *JobFetcher) pageURL(page int) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeResults extracts the "results" array from the API envelope.
func decodeResults(body []byte) ([]models.JobRecord, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	raw, ok := envelope["results"]
	if !ok {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedResponse)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: results is not an array", ErrMalformedResponse)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// one bad record does not cost the rest of the page
	jobs := make([]models.JobRecord, 0, len(items))
	var lastErr error
	for i, item := range items {
		var job models.JobRecord
		if err := json.Unmarshal(item, &job); err != nil {
			log.Printf("⚠️  Skipping job record %d: %v", i, err)
			lastErr = err
			continue
		}
		jobs = append(jobs, job)
	}
	// a page of only bad records is malformed, not empty
	if len(jobs) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, lastErr)
	}
	return jobs, nil
}

func requestFailureReason(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return "request failed"
}
