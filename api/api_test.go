// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/votesandwich/api/sandwiches"
	"github.com/vechain/votesandwich/metrics"
	"github.com/vechain/votesandwich/position"
	"github.com/vechain/votesandwich/sandwich"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

// noVotes answers every query as a user who never voted.
type noVotes struct{}

func (noVotes) HasAnyVotes(context.Context, string) (bool, error) { return false, nil }
func (noVotes) UserVotes(context.Context, string) ([]sandwich.Vote, error) {
	return nil, nil
}

func (noVotes) VaultPositions(context.Context, string) ([]*position.Position, error) {
	return nil, nil
}

func (noVotes) StakingPositions(context.Context, string) ([]*position.Position, error) {
	return nil, nil
}

func httpDo(t *testing.T, req *http.Request) ([]byte, *http.Response) {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res
}

func TestMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	sandwiches.New(sandwich.New(noVotes{}, nil)).Mount(router, "/sandwich")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	post := func(path, body string) int {
		req, _ := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
		_, res := httpDo(t, req)
		return res.StatusCode
	}
	assert.Equal(t, http.StatusOK, post("/sandwich/classify", `{"clauses":[]}`))
	assert.Equal(t, http.StatusOK, post("/sandwich/classify", `{"clauses":[]}`))
	assert.Equal(t, http.StatusBadRequest, post("/sandwich/classify", `nope`))

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	body, _ := httpDo(t, req)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	counts := make(map[string]float64)
	for _, metric := range families["sandwich_api_request_count"].GetMetric() {
		labels := make(map[string]string)
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["name"] != "sandwich_classify" {
			continue
		}
		assert.Equal(t, http.MethodPost, labels["method"])
		counts[labels["code"]] = metric.GetCounter().GetValue()
	}
	assert.Len(t, counts, 2, "one entry per status code")
	assert.Equal(t, float64(2), counts["200"])
	assert.Equal(t, float64(1), counts["400"])

	require.Contains(t, families, "sandwich_api_duration_ms")
}

type recordingLogger struct {
	noopLogger
	infos [][]any
}

func TestRequestLoggerHandler(t *testing.T) {
	rec := &recordingLogger{}
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
	})

	handler := RequestLoggerHandler(next, rec)
	req := httptest.NewRequest(http.MethodPost, "/sandwich?x=1", strings.NewReader(`{"user":"osmo1user"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"user":"osmo1user"}`, seen, "body must reach the next handler")
	require.Len(t, rec.infos, 1)
	fields := rec.infos[0]
	assert.Contains(t, fields, "/sandwich?x=1")
	assert.Contains(t, fields, http.MethodPost)
	assert.Contains(t, fields, `{"user":"osmo1user"}`)

	long := strings.Repeat("a", maxLoggedBody+10)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(long)))
	assert.Len(t, seen, len(long))
	assert.Contains(t, rec.infos[1], long[:maxLoggedBody])
}

func TestNew(t *testing.T) {
	handler := New(sandwich.New(noVotes{}, nil), Options{
		AllowedOrigins:  "https://app.example.org",
		EnableReqLogger: true,
		EnableMetrics:   true,
	})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/sandwich/power/osmo1user", nil)
	req.Header.Set("Origin", "https://app.example.org")
	body, res := httpDo(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "https://app.example.org", res.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"user":"osmo1user","power":"0"}`, string(body))

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/sandwich/power/osmo1user", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	_, res = httpDo(t, req)
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/unknown", nil)
	_, res = httpDo(t, req)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
