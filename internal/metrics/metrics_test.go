package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeFailed))
	RecordFetch(OutcomeFailed, 120*time.Millisecond)
	RecordFetch(OutcomeFailed, 80*time.Millisecond)
	if got := testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeFailed)) - before; got != 2 {
		t.Fatalf("failed fetches: got %v want 2", got)
	}
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("error"))
	RecordRequest("error")
	if got := testutil.ToFloat64(RequestsTotal.WithLabelValues("error")) - before; got != 1 {
		t.Fatalf("error requests: got %v want 1", got)
	}
}

func TestCollectorsRegistered(t *testing.T) {
	RecordFetch(OutcomeSuccess, time.Millisecond)
	if n := testutil.CollectAndCount(FetchDuration, "gopages_fetch_duration_seconds"); n != 1 {
		t.Fatalf("fetch duration series: got %d want 1", n)
	}
}
