// Package calendar is the HTTP client for the external calendar booking service.
package calendar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go-recruitment-scheduler/internal/domain"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerSecond float64
}

var _ domain.BookingProvider = (*Client)(nil)

type Client struct {
	http        *resty.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

type createBookingRequest struct {
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Timezone  string            `json:"timezone,omitempty"`
	Attendees []domain.Attendee `json:"attendees"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &Client{
		http:        httpClient,
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger,
	}
}

// CreateBooking books the slot with the provider. A create carrying the same
// idempotency key is answered with the original booking by the provider.
func (c *Client) CreateBooking(ctx context.Context, slot domain.TimeSlot, attendees []domain.Attendee, metadata map[string]string) (*domain.ExternalBooking, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(createBookingRequest{
			Start:     slot.Start.UTC(),
			End:       slot.End.UTC(),
			Timezone:  slot.Timezone,
			Attendees: attendees,
			Metadata:  metadata,
		})
	if key := metadata[domain.MetadataIdempotencyKey]; key != "" {
		req.SetHeader("Idempotency-Key", key)
	}

	resp, err := req.Post("/bookings")
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	body := resp.Body()
	ref := gjson.GetBytes(body, "data.id").String()
	if ref == "" {
		return nil, &domain.ProviderError{
			StatusCode: resp.StatusCode(),
			Err:        errors.New("response has no booking id"),
		}
	}

	confirmed := slot
	if start, ok := parseTime(body, "data.start"); ok {
		confirmed.Start = start
	}
	if end, ok := parseTime(body, "data.end"); ok {
		confirmed.End = end
	}

	c.logger.Debug("external booking created", "external_ref", ref, "start", confirmed.Start)

	return &domain.ExternalBooking{ExternalRef: ref, ConfirmedSlot: confirmed}, nil
}

// CancelBooking deletes the booking. A booking the provider no longer knows is
// treated as already cancelled.
func (c *Client) CancelBooking(ctx context.Context, externalRef string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("ref", externalRef).
		Delete("/bookings/{ref}")
	if err != nil {
		return transportError(err)
	}

	switch resp.StatusCode() {
	case http.StatusNotFound, http.StatusGone:
		c.logger.Warn("external booking already gone", "external_ref", externalRef)
		return nil
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &domain.ProviderError{Retryable: true, Err: err}
}

func statusError(resp *resty.Response) error {
	code := resp.StatusCode()
	msg := gjson.GetBytes(resp.Body(), "message").String()
	if msg == "" {
		msg = gjson.GetBytes(resp.Body(), "error").String()
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &domain.ProviderError{
		Retryable:  code == http.StatusTooManyRequests || code >= http.StatusInternalServerError,
		StatusCode: code,
		Err:        errors.New(msg),
	}
}

func parseTime(body []byte, path string) (time.Time, bool) {
	v := gjson.GetBytes(body, path)
	if !v.Exists() {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v.String())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
