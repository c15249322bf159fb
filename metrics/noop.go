// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopProvider struct{}

func (noopProvider) counter(string) CountMeter                 { return noopMeter{} }
func (noopProvider) counterVec(string, []string) CountVecMeter { return noopMeter{} }
func (noopProvider) gauge(string) GaugeMeter                   { return noopMeter{} }
func (noopProvider) histogram(string, []int64) HistogramMeter  { return noopMeter{} }
func (noopProvider) histogramVec(string, []string, []int64) HistogramVecMeter {
	return noopMeter{}
}

func (noopProvider) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}

type noopMeter struct{}

func (noopMeter) Add(int64)                                  {}
func (noopMeter) Set(int64)                                  {}
func (noopMeter) Observe(int64)                              {}
func (noopMeter) AddWithLabel(int64, map[string]string)      {}
func (noopMeter) ObserveWithLabels(int64, map[string]string) {}
