// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/votesandwich/log"
)

const namespace = "sandwich"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches every meter to prometheus. Calling it
// more than once has no further effect.
func InitializePrometheusMetrics() {
	if _, ok := current().(*promProvider); !ok {
		metrics.Store(&holder{&promProvider{}})
	}
}

type promProvider struct {
	mu         sync.Mutex
	collectors map[string]prometheus.Collector
}

// register returns the collector registered under name, creating it with
// create on first use.
func (p *promProvider) register(name string, create func() prometheus.Collector) prometheus.Collector {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.collectors[name]; ok {
		return c
	}
	if p.collectors == nil {
		p.collectors = make(map[string]prometheus.Collector)
	}
	c := create()
	if err := prometheus.Register(c); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
	}
	p.collectors[name] = c
	return c
}

func floatBuckets(buckets []int64) []float64 {
	out := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, float64(b))
	}
	return out
}

func (p *promProvider) counter(name string) CountMeter {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
	})
	return promCounter{c.(prometheus.Counter)}
}

func (p *promProvider) counterVec(name string, labels []string) CountVecMeter {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
	})
	return promCounterVec{c.(*prometheus.CounterVec)}
}

func (p *promProvider) gauge(name string) GaugeMeter {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
	})
	return promGauge{c.(prometheus.Gauge)}
}

func (p *promProvider) histogram(name string, buckets []int64) HistogramMeter {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
	})
	return promHistogram{c.(prometheus.Histogram)}
}

func (p *promProvider) histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	c := p.register(name, func() prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		}, labels)
	})
	return promHistogramVec{c.(*prometheus.HistogramVec)}
}

func (p *promProvider) handler() http.Handler {
	return promhttp.Handler()
}

type promCounter struct{ c prometheus.Counter }

func (m promCounter) Add(i int64) { m.c.Add(float64(i)) }

type promCounterVec struct{ c *prometheus.CounterVec }

func (m promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	m.c.With(labels).Add(float64(i))
}

type promGauge struct{ g prometheus.Gauge }

func (m promGauge) Add(i int64) { m.g.Add(float64(i)) }
func (m promGauge) Set(i int64) { m.g.Set(float64(i)) }

type promHistogram struct{ h prometheus.Histogram }

func (m promHistogram) Observe(i int64) { m.h.Observe(float64(i)) }

type promHistogramVec struct{ h *prometheus.HistogramVec }

func (m promHistogramVec) ObserveWithLabels(i int64, labels map[string]string) {
	m.h.With(labels).Observe(float64(i))
}
