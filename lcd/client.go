// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lcd provides an HTTP client for the contract smart-query endpoint
// of a chain's LCD (REST) gateway.
package lcd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vechain/votesandwich/metrics"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

var metricQueryDuration = metrics.HistogramVec("lcd_query_duration_ms", []string{"code"}, metrics.BucketQueries)

// Client queries contracts through an LCD gateway.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(baseURL string) *Client {
	return NewWithHTTP(baseURL, http.DefaultClient)
}

// NewWithHTTP creates a Client using c for requests.
func NewWithHTTP(baseURL string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimRight(baseURL, "/"),
		c:   c,
	}
}

// URL returns the gateway base URL.
func (c *Client) URL() string {
	return c.url
}

type smartQueryResponse struct {
	Data json.RawMessage `json:"data"`
}

// SmartQuery runs query against contract and decodes the response data into out.
func (c *Client) SmartQuery(ctx context.Context, contract string, query any, out any) error {
	if contract == "" {
		return errors.New("empty contract address")
	}
	q, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("unable to marshal query - %w", err)
	}

	endpoint := c.url + "/cosmwasm/wasm/v1/contract/" + url.PathEscape(contract) +
		"/smart/" + url.PathEscape(base64.StdEncoding.EncodeToString(q))
	body, err := c.httpGET(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("unable to query contract %s - %w", contract, err)
	}

	var res smartQueryResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("unable to unmarshal query response - %w", err)
	}
	if len(res.Data) == 0 {
		return fmt.Errorf("empty query response - %w", ErrNotFound)
	}
	if err := json.Unmarshal(res.Data, out); err != nil {
		return fmt.Errorf("unable to unmarshal query data - %w", err)
	}
	return nil
}

func (c *Client) httpGET(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.c.Do(req)
	if err != nil {
		metricQueryDuration.ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"code": "error"})
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()
	metricQueryDuration.ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"code": fmt.Sprint(resp.StatusCode)})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, body, ErrNotFound)
	default:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, body, ErrNot200Status)
	}
}
