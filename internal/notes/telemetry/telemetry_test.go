package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/notes/pkg/jwtx"
)

func TestCounters(t *testing.T) {
	m := New()

	m.TokenIssued(jwtx.KindAccess)
	m.TokenIssued(jwtx.KindAccess)
	m.TokenIssued(jwtx.KindRefresh)
	m.TokenRejected(jwtx.KindAccess, jwtx.ErrExpired)
	m.TokenRejected(jwtx.KindAccess, nil)
	m.AuthAttempt("sign_in", "denied")

	require.InDelta(t, 2, testutil.ToFloat64(m.tokensIssued.WithLabelValues("access")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.tokensIssued.WithLabelValues("refresh")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.tokenRejections.WithLabelValues("access", "expired")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.tokenRejections.WithLabelValues("access", "missing")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.authAttempts.WithLabelValues("sign_in", "denied")), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.TokenIssued(jwtx.KindAccess)
	m.TokenRejected(jwtx.KindRefresh, jwtx.ErrMalformed)
	m.AuthAttempt("refresh", "ok")

	h := m.Instrument("GET /livez")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInstrumentAndHandler(t *testing.T) {
	m := New()

	h := m.Instrument("GET /api/notes/{id}")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/notes/7", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	require.True(t, strings.Contains(out, `notes_http_request_duration_seconds_count{method="GET",route="GET /api/notes/{id}",status="404"} 1`), out)
	require.Contains(t, out, "go_goroutines")
}
