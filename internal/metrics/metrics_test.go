// Showfinder - Recurring Show Discovery and Series Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showfinder

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns how many observations a histogram has recorded.
func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordStrategyAttempt_Duration(t *testing.T) {
	h := SearchStrategyDuration.WithLabelValues("histogram_test")
	before := histogramCount(t, h)

	RecordStrategyAttempt("histogram_test", "success", 3*time.Millisecond)
	RecordStrategyAttempt("histogram_test", "skipped", 0)

	if got := histogramCount(t, h); got != before+1 {
		t.Errorf("sample count = %d, want %d (skipped attempts are not timed)", got, before+1)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "shows_test"))

	RecordDBQuery("SELECT", "shows_test", 5*time.Millisecond, nil)
	RecordDBQuery("SELECT", "shows_test", 5*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "shows_test")); got != before+1 {
		t.Errorf("DBQueryErrors = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/test", "200")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("GET", "/api/v1/test", "200", 10*time.Millisecond)

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestSearchMetrics(t *testing.T) {
	attempts := SearchStrategyAttempts.WithLabelValues("test-strategy", "failure")
	before := testutil.ToFloat64(attempts)
	RecordStrategyAttempt("test-strategy", "failure", time.Millisecond)
	if got := testutil.ToFloat64(attempts); got != before+1 {
		t.Errorf("attempts = %v, want %v", got, before+1)
	}

	dropped := SearchResultsDropped.WithLabelValues("test-strategy", "out_of_radius")
	beforeDropped := testutil.ToFloat64(dropped)
	RecordDropped("test-strategy", "out_of_radius", 3)
	RecordDropped("test-strategy", "out_of_radius", 0)
	if got := testutil.ToFloat64(dropped); got != beforeDropped+3 {
		t.Errorf("dropped = %v, want %v", got, beforeDropped+3)
	}
}

func TestRecordGeocode(t *testing.T) {
	c := GeocodeRequests.WithLabelValues("zip-table", "hit")
	before := testutil.ToFloat64(c)
	RecordGeocode("zip-table", "hit")
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("GeocodeRequests = %v, want %v", got, before+1)
	}
}
