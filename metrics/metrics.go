// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes a small set of meters backed by prometheus. Until
// InitializePrometheusMetrics is called every meter is a no-op.
package metrics

import (
	"net/http"
	"sync/atomic"
)

type holder struct{ p provider }

var metrics atomic.Pointer[holder]

func init() {
	metrics.Store(&holder{noopProvider{}})
}

type provider interface {
	counter(name string) CountMeter
	counterVec(name string, labels []string) CountVecMeter
	gauge(name string) GaugeMeter
	histogram(name string, buckets []int64) HistogramMeter
	histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	handler() http.Handler
}

func current() provider {
	return metrics.Load().p
}

// HTTPHandler returns the http handler serving the collected metrics.
func HTTPHandler() http.Handler {
	return current().handler()
}

// Standard buckets, in milliseconds.
var (
	BucketQueries  = []int64{0, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000}
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 5000, 10000,
	}
)

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a value that can go up and down.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// HistogramMeter aggregates observations into buckets.
type HistogramMeter interface {
	Observe(int64)
}

// HistogramVecMeter is a histogram partitioned by labels.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// Meters resolve the active provider on every call, so package level meters
// declared before InitializePrometheusMetrics still report once it runs.

type lazyCounter struct{ name string }

func (m lazyCounter) Add(i int64) { current().counter(m.name).Add(i) }

func Counter(name string) CountMeter { return lazyCounter{name} }

type lazyCounterVec struct {
	name   string
	labels []string
}

func (m lazyCounterVec) AddWithLabel(i int64, l map[string]string) {
	current().counterVec(m.name, m.labels).AddWithLabel(i, l)
}

func CounterVec(name string, labels []string) CountVecMeter {
	return lazyCounterVec{name, labels}
}

type lazyGauge struct{ name string }

func (m lazyGauge) Add(i int64) { current().gauge(m.name).Add(i) }
func (m lazyGauge) Set(i int64) { current().gauge(m.name).Set(i) }

func Gauge(name string) GaugeMeter { return lazyGauge{name} }

type lazyHistogram struct {
	name    string
	buckets []int64
}

func (m lazyHistogram) Observe(i int64) { current().histogram(m.name, m.buckets).Observe(i) }

func Histogram(name string, buckets []int64) HistogramMeter {
	return lazyHistogram{name, buckets}
}

type lazyHistogramVec struct {
	name    string
	labels  []string
	buckets []int64
}

func (m lazyHistogramVec) ObserveWithLabels(i int64, l map[string]string) {
	current().histogramVec(m.name, m.labels, m.buckets).ObserveWithLabels(i, l)
}

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return lazyHistogramVec{name, labels, buckets}
}
