// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func sumCounters(mf *dto.MetricFamily) (sum float64) {
	for _, m := range mf.Metric {
		sum += m.GetCounter().GetValue()
	}
	return
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	histTotal := 0
	for i := range rand.N(100) + 2 {
		HistogramVec("hist1", []string{"zeroOrOne"}, nil).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	countTotal := 0
	for i := range rand.N(100) + 2 {
		countVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		countTotal += i
	}

	gaugeVec.AddWithLabel(7, map[string]string{"zeroOrOne": "0"})
	gaugeVec.AddWithLabel(3, map[string]string{"zeroOrOne": "0"})
	gaugeVec.SetWithLabel(42, map[string]string{"zeroOrOne": "1"})
	gaugeVec.SetWithLabel(5, map[string]string{"zeroOrOne": "1"})

	mfs := gather(t)

	hist := mfs["stsol_hist1"]
	require.NotNil(t, hist)
	require.Len(t, hist.Metric, 2)
	require.Equal(t, float64(histTotal),
		hist.Metric[0].GetHistogram().GetSampleSum()+hist.Metric[1].GetHistogram().GetSampleSum())

	require.Equal(t, float64(countTotal), sumCounters(mfs["stsol_countVec1"]))

	gauges := map[string]float64{}
	for _, m := range mfs["stsol_gaugeVec1"].Metric {
		gauges[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
	}
	require.Equal(t, map[string]float64{"0": 10, "1": 5}, gauges)
}

func TestPromMetricsReuseMeter(t *testing.T) {
	InitializePrometheusMetrics()

	a := CounterVec("reused", []string{"k"})
	b := CounterVec("reused", []string{"k"})
	require.Same(t, a, b)

	a.AddWithLabel(2, map[string]string{"k": "v"})
	b.AddWithLabel(3, map[string]string{"k": "v"})
	require.Equal(t, float64(5), sumCounters(gather(t)["stsol_reused"]))
}

func TestPromHandler(t *testing.T) {
	InitializePrometheusMetrics()
	CounterVec("served", []string{"k"}).AddWithLabel(1, map[string]string{"k": "v"})

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `stsol_served{k="v"} 1`))
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	for _, a := range []any{
		GaugeVec("noopGauge", nil),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// meters resolved after initialization come from prometheus
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
	require.Same(t, lazyCounterVec(), lazyCounterVec())
}
