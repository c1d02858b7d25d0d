package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveRun(t *testing.T) {
	t.Parallel()

	r := NewRecorder(false)
	r.ObserveComponent(2, 1, 0)
	r.ObserveComponent(1, 0, 1)
	r.ObserveRun(time.Now(), 2, nil)
	r.ObserveRun(time.Now(), 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Runs.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Components))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Tasks.WithLabelValues("thread")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Tasks.WithLabelValues("listener_task")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.LastComponent))
	assert.Positive(t, testutil.ToFloat64(r.LastSuccess))

	count, err := testutil.GatherAndCount(r.Registry(), "psmgen_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecorder_Expose(t *testing.T) {
	t.Parallel()

	r := NewRecorder(false)
	r.ObserveComponent(1, 1, 1)

	expected := `
# HELP psmgen_components_generated_total Components whose firmware was generated.
# TYPE psmgen_components_generated_total counter
psmgen_components_generated_total 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "psmgen_components_generated_total"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `psmgen_tasks_generated_total{kind="comm_task"} 1`)

	path := filepath.Join(t.TempDir(), "psmgen.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "psmgen_components_generated_total 1")
}

func TestRecorder_RuntimeCollectors(t *testing.T) {
	t.Parallel()

	count, err := testutil.GatherAndCount(NewRecorder(true).Registry(), "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
