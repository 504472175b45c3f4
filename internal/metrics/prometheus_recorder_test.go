package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prom.Registry) string {
	t.Helper()
	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("pages", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("pages", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.ObservePageDuration(time.Millisecond)
	pr.IncPageResult(ResultSuccess)
	pr.IncPageResult(ResultSuccess)
	pr.IncPageResult(ResultSkipped)
	pr.AddBlocks("paragraph", 3)
	pr.AddBlocks("heading", 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	out := scrape(t, reg)
	require.Contains(t, out, `mdsite_page_results_total{result="success"} 2`)
	require.Contains(t, out, `mdsite_page_results_total{result="skipped"} 1`)
	require.Contains(t, out, `mdsite_blocks_total{kind="paragraph"} 3`)
	require.NotContains(t, out, `kind="heading"`)
	require.Contains(t, out, `mdsite_build_outcomes_total{outcome="success"} 1`)
	require.Contains(t, out, `mdsite_stage_results_total{result="success",stage="pages"} 1`)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveBuildDuration(time.Second)
		pr.IncPageResult(ResultFatal)
		pr.AddBlocks("code_block", 1)
	})
}

func TestPrometheusRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)
	require.Panics(t, func() { NewPrometheusRecorder(reg) })
}
