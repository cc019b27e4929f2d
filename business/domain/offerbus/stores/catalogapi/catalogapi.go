// Package catalogapi reads the Microsoft offer catalog over HTTP.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jcpaschoal/partner-portal/business/domain/offerbus"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config holds the settings for the catalog endpoint.
type Config struct {
	BaseURL string
	Country string
	Timeout time.Duration
}

// Client retrieves Microsoft offers.
type Client struct {
	log     *logger.Logger
	http    *http.Client
	baseURL *url.URL
	country string
}

// New constructs a catalog client. Requests carry the trace context.
func New(log *logger.Logger, cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	c := Client{
		log: log,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: base,
		country: cfg.Country,
	}

	return &c, nil
}

// QueryMicrosoftOffers returns the catalog for the configured country.
func (c *Client) QueryMicrosoftOffers(ctx context.Context) ([]offerbus.MicrosoftOffer, error) {
	u := c.baseURL.JoinPath("offers")

	if c.country != "" {
		q := u.Query()
		q.Set("country", c.country)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog status %d: %s", resp.StatusCode, body)
	}

	var data offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	c.log.Debug(ctx, "catalogapi: offers retrieved", "count", len(data.Items))

	return toBusOffers(data.Items), nil
}
