package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/psmgen/internal/app"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestGenerate_WritesComponentDirectories(t *testing.T) {
	t.Parallel()

	result := testutil.Run(t, "farm.yaml", testutil.Fixture(t, "yaml"), nil)
	require.NoError(t, result.Err)
	require.Len(t, result.Units, 2)

	for _, rel := range [][]string{
		{"Field Station", "fieldStation.ino"},
		{"Field Station", "secrets.h"},
		{"Field Station", "comm_utils.h"},
		{"Pump Controller", "pumpController.ino"},
	} {
		assert.FileExists(t, filepath.Join(append([]string{result.OutputDir}, rel...)...))
	}
	assert.Contains(t, result.Output, "Generated "+filepath.Join(result.OutputDir, "Field Station", "fieldStation.ino"))
	assert.Contains(t, result.LogOutput, "Generation finished.")

	station := result.ReadOutput(t, "Field Station", "fieldStation.ino")
	pump := result.ReadOutput(t, "Pump Controller", "pumpController.ino")
	assert.Contains(t, station, `const char* moistureReport_topic = "cps1_smartFarm/cpc1/c1/dependum";`)
	assert.Contains(t, pump, `const char* moistureFeed_topic = "cps1_smartFarm/cpc1/c1/dependum";`)
	assert.Contains(t, station, "irrigate_GoalAchieved = (readMoisture(level) && monitor_GoalAchieved);")
}

func TestGenerate_FormatsProduceIdenticalFirmware(t *testing.T) {
	t.Parallel()

	formats := []string{"xml", "hcl", "yaml"}
	sketches := make(map[string]string)
	models := make(map[string]*model.System)
	for _, format := range formats {
		result := testutil.Run(t, "farm."+format, testutil.Fixture(t, format), nil)
		require.NoError(t, result.Err, format)
		sketches[format] = result.ReadOutput(t, "Field Station", "fieldStation.ino") +
			result.ReadOutput(t, "Pump Controller", "pumpController.ino")

		loader, err := app.LoaderFor("farm." + format)
		require.NoError(t, err)
		sys, err := loader.Load(context.Background(), filepath.Join(filepath.Dir(result.OutputDir), "farm."+format))
		require.NoError(t, err)
		models[format] = sys
	}

	opts := []cmp.Option{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(model.System{}, "Source"),
	}
	for _, format := range formats[1:] {
		if diff := cmp.Diff(models["xml"], models[format], opts...); diff != "" {
			t.Errorf("%s model mismatch (-xml +%s):\n%s", format, format, diff)
		}
		assert.Equal(t, sketches["xml"], sketches[format], "%s firmware differs from xml", format)
	}
}

func TestGenerate_FailureWritesNothing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing comm relation",
			content: strings.Replace(testutil.Fixture(t, "yaml"), "      comm_relations:\n        - {source: l1, target: t3}\n", "", 1),
			wantErr: model.ErrMissingLinkage,
		},
		{
			name:    "unknown pairing",
			content: strings.Replace(testutil.Fixture(t, "yaml"), "paired_task: c1", "paired_task: c9", 1),
			wantErr: model.ErrUnresolvedReference,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.Run(t, "farm.yaml", tc.content, nil)
			require.Error(t, result.Err)
			assert.ErrorIs(t, result.Err, tc.wantErr)
			assert.Nil(t, result.Units)
			testutil.AssertNoOutput(t, result)
		})
	}
}

func TestGenerate_MetricsFile(t *testing.T) {
	t.Parallel()

	metricsPath := filepath.Join(t.TempDir(), "psmgen.prom")
	result := testutil.Run(t, "farm.hcl", testutil.Fixture(t, "hcl"), func(c *app.Config) {
		c.MetricsFile = metricsPath
	})
	require.NoError(t, result.Err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `psmgen_runs_total{result="success"} 1`)
	assert.Contains(t, string(data), "psmgen_components_generated_total 2")
	assert.Contains(t, string(data), `psmgen_tasks_generated_total{kind="thread"} 3`)
}

func TestGenerate_WarnsAboutStaleSketches(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "firmware")
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "Old Station"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Old Station", "oldStation.ino"), []byte("void loop() {}\n"), 0o644))

	result := testutil.Run(t, "farm.yaml", testutil.Fixture(t, "yaml"), func(c *app.Config) {
		c.OutputDir = outDir
	})
	require.NoError(t, result.Err)

	assert.Contains(t, result.LogOutput, "Sketch does not belong to any component in the model.")
	assert.Contains(t, result.LogOutput, "oldStation.ino")
	assert.FileExists(t, filepath.Join(outDir, "Old Station", "oldStation.ino"))
}

func newApp(t *testing.T, modelName, content string, configure func(*app.Config)) (*app.App, *testutil.SafeBuffer, *app.Config) {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{modelName: content})
	cfg := app.DefaultConfig()
	cfg.ModelPath = filepath.Join(dir, modelName)
	cfg.OutputDir = filepath.Join(dir, "output")
	if configure != nil {
		configure(&cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)
	out := &testutil.SafeBuffer{}
	return app.New(out, io.Discard, validated), out, validated
}

func TestValidate(t *testing.T) {
	t.Parallel()

	a, out, cfg := newApp(t, "farm.xml", testutil.Fixture(t, "xml"), nil)
	units, err := a.Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 2)

	want := `component "Field Station" (cpc1): 1 functions, 2 threads, 1 comm tasks, 0 listener tasks
  topic c1: cps1_smartFarm/cpc1/c1/dependum
component "Pump Controller" (cpc2): 0 functions, 1 threads, 0 comm tasks, 1 listener tasks
  topic l1: cps1_smartFarm/cpc1/c1/dependum
`
	assert.Equal(t, want, out.String())
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestValidate_ReportsLoadErrors(t *testing.T) {
	t.Parallel()

	a, _, _ := newApp(t, "farm.yaml", "system: [", nil)
	_, err := a.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load model")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(c *app.Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*app.Config) {}},
		{name: "missing model", mutate: func(c *app.Config) { c.ModelPath = "" }, errMsg: "ModelPath"},
		{name: "unsupported extension", mutate: func(c *app.Config) { c.ModelPath = "model.json" }, errMsg: "unsupported model format"},
		{name: "empty output", mutate: func(c *app.Config) { c.OutputDir = "" }, errMsg: "OutputDir"},
		{name: "bad log format", mutate: func(c *app.Config) { c.LogFormat = "yaml" }, errMsg: "log-format"},
		{name: "bad log level", mutate: func(c *app.Config) { c.LogLevel = "loud" }, errMsg: "log-level"},
		{name: "bad port", mutate: func(c *app.Config) { c.HealthcheckPort = -1 }, errMsg: "healthcheck-port"},
		{name: "negative debounce", mutate: func(c *app.Config) { c.Debounce = -time.Second }, errMsg: "debounce"},
		{name: "bad firmware options", mutate: func(c *app.Config) { c.Firmware.Options.SerialBaud = 0 }, errMsg: "baud"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := app.DefaultConfig()
			cfg.ModelPath = "model.YML"
			tc.mutate(&cfg)

			got, err := app.NewConfig(cfg)
			if tc.errMsg == "" {
				require.NoError(t, err)
				if diff := cmp.Diff(&cfg, got); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestHealthMux(t *testing.T) {
	t.Parallel()

	a, _, _ := newApp(t, "farm.yaml", testutil.Fixture(t, "yaml"), func(c *app.Config) { c.HealthcheckPort = 1 })
	_, err := a.Generate(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(a.HealthMux())
	defer srv.Close()

	get := func(path string) string {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}
	assert.Equal(t, "OK\n", get("/health"))
	assert.Contains(t, get("/metrics"), "psmgen_components_generated_total 2")
}

func TestWatch_RegeneratesOnChange(t *testing.T) {
	t.Parallel()

	content := testutil.Fixture(t, "yaml")
	a, _, cfg := newApp(t, "farm.yaml", content, func(c *app.Config) { c.Debounce = 20 * time.Millisecond })
	sketch := filepath.Join(cfg.OutputDir, "Field Station", "fieldStation.ino")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	readSketch := func() string {
		data, err := os.ReadFile(sketch)
		if err != nil {
			return ""
		}
		return string(data)
	}
	require.Eventually(t, func() bool {
		return strings.Contains(readSketch(), "// Description: Measures soil moisture")
	}, 5*time.Second, 20*time.Millisecond)

	updated := strings.Replace(content, "description: Measures soil moisture", "description: Measures soil humidity", 1)
	require.NoError(t, os.WriteFile(cfg.ModelPath, []byte(updated), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(readSketch(), "// Description: Measures soil humidity")
	}, 5*time.Second, 20*time.Millisecond)

	// A broken model is logged and the previous output stays in place.
	require.NoError(t, os.WriteFile(cfg.ModelPath, []byte("system: ["), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, readSketch(), "// Description: Measures soil humidity")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancellation")
	}
}

func TestWatchLoop_ClosedWatcherCancelsGroup(t *testing.T) {
	t.Parallel()

	a, _, cfg := newApp(t, "farm.yaml", testutil.Fixture(t, "yaml"), nil)
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, watcher.Close())

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error { return a.WatchLoop(gctx, watcher, cfg.ModelPath) })
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, app.ErrWatcherClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("closed watcher did not stop the group")
	}
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.xml", "a.HCL", "a.yaml", "a.yml"} {
		_, err := app.LoaderFor(name)
		assert.NoError(t, err, name)
	}
	_, err := app.LoaderFor("a.txt")
	assert.ErrorContains(t, err, `unsupported model format ".txt"`)
}
