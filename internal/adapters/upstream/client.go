package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/cityexplorer/internal/pkg/metrics"
	"github.com/samirrijal/cityexplorer/internal/pkg/telemetry"
)

var (
	// ErrUpstream wraps every transport, status, and decoding failure.
	ErrUpstream = errors.New("upstream request failed")
	// ErrNoResults is returned when a provider answers successfully with nothing to use.
	ErrNoResults = errors.New("upstream returned no results")
)

// Request describes one outbound GET.
type Request struct {
	API         string // label for logs, metrics, and spans
	URL         string
	Query       url.Values
	BearerToken string // sent as "Authorization: Bearer <token>" when set
}

// Client performs single-shot JSON GETs against third-party APIs.
type Client struct {
	http *fasthttp.Client
}

// NewClient creates a Client with fasthttp's default transport settings.
func NewClient() *Client {
	return &Client{http: &fasthttp.Client{
		Name:            "city-explorer",
		MaxConnsPerHost: 64,
	}}
}

// Get issues the request and decodes the JSON body into out.
// A context deadline bounds the call; otherwise the transport default applies.
func (c *Client) Get(ctx context.Context, r Request, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, r.API, err)
	}

	_, span := telemetry.StartSpan(ctx, "upstream."+r.API)
	defer span.End()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(withQuery(r.URL, r.Query))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if r.BearerToken != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+r.BearerToken)
	}

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	metrics.UpstreamDuration.WithLabelValues(r.API).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(r.API, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return fmt.Errorf("%w: %s: %v", ErrUpstream, r.API, err)
	}

	status := resp.StatusCode()
	metrics.UpstreamRequests.WithLabelValues(r.API, strconv.Itoa(status)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, "unexpected status")
		return fmt.Errorf("%w: %s: status %d: %s", ErrUpstream, r.API, status, snippet(resp.Body()))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode error")
		return fmt.Errorf("%w: %s: decode body: %v", ErrUpstream, r.API, err)
	}
	return nil
}

func withQuery(base string, q url.Values) string {
	if len(q) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
