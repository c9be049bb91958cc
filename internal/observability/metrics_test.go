package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserveAPI(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI(http.MethodGet, "/api/blood-inventory", http.StatusOK, 20*time.Millisecond)
	m.ObserveAPI(http.MethodGet, "/api/blood-inventory", http.StatusOK, 30*time.Millisecond)

	got := testutil.ToFloat64(m.apiRequests.WithLabelValues(http.MethodGet, "/api/blood-inventory", "200"))
	if got != 2 {
		t.Fatalf("request counter: got=%v want=2", got)
	}
}

func TestMetricsReportReadOutcome(t *testing.T) {
	m := NewMetrics()
	m.ObserveReportRead("dashboard", nil)
	m.ObserveReportRead("dashboard", errors.New("boom"))

	if got := testutil.ToFloat64(m.reportReads.WithLabelValues("dashboard", "error")); got != 1 {
		t.Fatalf("error outcome: got=%v want=1", got)
	}
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RegisterGaugeFunc("sse_clients", "Connected change-feed streams.", func() float64 { return 3 })
	m.ObserveChange("HospitalCreated")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"lifeline_sse_clients 3", `lifeline_changes_emitted_total{event="HospitalCreated"} 1`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.IncInflight()
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.ObserveReportRead("inventory", nil)
	m.DecInflight()
}

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders("x-api-key=abc, bad ,x-team = core")
	if len(h) != 2 || h["x-api-key"] != "abc" || h["x-team"] != "core" {
		t.Fatalf("ParseHeaders: got=%v", h)
	}
	if ParseHeaders("  ") != nil {
		t.Fatalf("ParseHeaders(blank) should be nil")
	}
}
