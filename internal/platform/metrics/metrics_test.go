package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MatchCreated("scan")
		m.ScanRun("ok")
		m.ScanItemFailed()
		m.NotificationCreated("match_found")
		m.PublishFailed()
		m.Transition("confirmed")
	})
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := New()
	m.MatchCreated("lost_report")
	m.MatchCreated("lost_report")
	m.ScanItemFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lostfound_matches_created_total{trigger="lost_report"} 2`)
	assert.Contains(t, string(body), "lostfound_scan_item_failures_total 1")
}
