package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetricsEndpoint_ExposesRequestCounters verifies that requests served by
// the mux show up on its own /metrics endpoint.
func TestMetricsEndpoint_ExposesRequestCounters(t *testing.T) {
	r := NewMux(&mockService{kinds: []string{"ping"}})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	body := w.Body.Bytes()
	for _, name := range []string{"evbus_http_requests_total", "evbus_http_request_duration_seconds"} {
		if !bytes.Contains(body, []byte(name)) {
			t.Fatalf("expected to find %s in metrics", name)
		}
	}
}

func TestMetricsMiddleware_LabelsRoutePattern(t *testing.T) {
	r := NewMux(&mockService{kinds: []string{"ping"}})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/events/{kind}", http.MethodPost, "200"))

	postJSON(t, r, "/events/ping", `{}`)
	postJSON(t, r, "/events/ping", `{}`)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/events/{kind}", http.MethodPost, "200"))
	if after-before != 2 {
		t.Fatalf("requests_total delta=%v want 2", after-before)
	}
}

func TestMetricsMiddleware_UnmatchedRoutesShareOneLabel(t *testing.T) {
	r := NewMux(&mockService{kinds: []string{"ping"}})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(unmatchedRoute, http.MethodGet, "404"))

	for _, p := range []string{"/no/such/path", "/another-missing-page"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s status=%d want 404", p, w.Code)
		}
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(unmatchedRoute, http.MethodGet, "404"))
	if after-before != 2 {
		t.Fatalf("unmatched delta=%v want 2", after-before)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if bytes.Contains(w.Body.Bytes(), []byte("/no/such/path")) {
		t.Fatalf("raw request path leaked into metric labels")
	}
}

func TestMetrics_CountPublishOutcomes(t *testing.T) {
	ok := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("ping", "ok"))
	missing := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("ping", "404"))

	countPublish("ping", http.StatusOK)
	countPublish("ping", http.StatusNotFound)

	if got := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("ping", "ok")) - ok; got != 1 {
		t.Fatalf("ok delta=%v", got)
	}
	if got := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("ping", "404")) - missing; got != 1 {
		t.Fatalf("404 delta=%v", got)
	}
}

func TestRequestLogLevel(t *testing.T) {
	cases := []struct {
		url, header string
		want        LogLevel
	}{
		{"/x?log=1", "", LevelDebug},
		{"/x?log=error", "", LevelError},
		{"/x", "off", LevelOff},
		{"/x", "debug", LevelDebug},
		{"/x", "", defaultLogLevel},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.url, nil)
		if tc.header != "" {
			req.Header.Set("X-Log-Level", tc.header)
		}
		if got := requestLogLevel(req); got != tc.want {
			t.Fatalf("%s header=%q: got %d want %d", tc.url, tc.header, got, tc.want)
		}
	}
}
