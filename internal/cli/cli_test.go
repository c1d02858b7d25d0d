package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/psmgen/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultsFor(model string, mutate func(c *app.Config)) *app.Config {
	cfg := app.DefaultConfig()
	cfg.ModelPath = model
	if mutate != nil {
		mutate(&cfg)
	}
	return &cfg
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		args            []string
		expectExit      bool
		expectErr       bool
		expectedCommand Command
		expectedConfig  *app.Config
		checkOutput     func(t *testing.T, output string)
	}{
		{
			name:            "Positional model defaults to generate",
			args:            []string{"/models/farm.xml"},
			expectedCommand: CommandGenerate,
			expectedConfig:  defaultsFor("/models/farm.xml", nil),
		},
		{
			name: "Generate with all flags",
			args: []string{
				"generate", "/models/farm.hcl",
				"-o", "/tmp/fw",
				"--metrics-file=/tmp/fw.prom",
				"--log-level=DEBUG",
				"--log-format=json",
				"--debug=false",
			},
			expectedCommand: CommandGenerate,
			expectedConfig: defaultsFor("/models/farm.hcl", func(c *app.Config) {
				c.OutputDir = "/tmp/fw"
				c.MetricsFile = "/tmp/fw.prom"
				c.LogLevel = "debug"
				c.LogFormat = "json"
				c.Firmware.Options.Debug = false
			}),
		},
		{
			name:            "Validate",
			args:            []string{"validate", "farm.yaml"},
			expectedCommand: CommandValidate,
			expectedConfig:  defaultsFor("farm.yaml", nil),
		},
		{
			name:            "Watch with server and debounce",
			args:            []string{"watch", "farm.yml", "--healthcheck-port", "8080", "--debounce", "1s"},
			expectedCommand: CommandWatch,
			expectedConfig: defaultsFor("farm.yml", func(c *app.Config) {
				c.HealthcheckPort = 8080
				c.Debounce = time.Second
			}),
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:", "Expected help text to be printed")
			},
		},
		{
			name:       "No model triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:", "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "farm.xml"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "farm.xml"},
			expectErr: true,
		},
		{
			name:      "Unsupported model extension returns an error",
			args:      []string{"farm.json"},
			expectErr: true,
		},
		{
			name:      "Unknown flag returns an error",
			args:      []string{"--this-is-not-a-valid-flag", "farm.xml"},
			expectErr: true,
		},
		{
			name:      "Watch-only flag is rejected by validate",
			args:      []string{"validate", "farm.xml", "--healthcheck-port=1"},
			expectErr: true,
		},
		{
			name:      "Missing explicit env file returns an error",
			args:      []string{"--env-file=/does/not/exist.env", "farm.xml"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			inv, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				assert.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				require.NotNil(t, inv)
				assert.Equal(t, tc.expectedCommand, inv.Command)
				if diff := cmp.Diff(tc.expectedConfig, inv.Config); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParse_ConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "psmgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
output: /from/config
firmware:
  stack_depth: 2048
  json_capacity: 512
mqtt:
  broker: mqtt.example.com
  port: 8883
`), 0o644))
	envPath := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(envPath, []byte("PSMGEN_WIFI_SSID=dotenv-net\n"), 0o644))

	t.Setenv("PSMGEN_FIRMWARE_PRIORITY", "3")
	t.Setenv("PSMGEN_FIRMWARE_STACK_DEPTH", "4096")
	// Registers cleanup for the variable the env file sets; godotenv only
	// sets variables that are absent.
	t.Setenv("PSMGEN_WIFI_SSID", "")
	require.NoError(t, os.Unsetenv("PSMGEN_WIFI_SSID"))

	inv, _, err := Parse([]string{"--config", configPath, "--env-file", envPath, "farm.xml", "-o", "/from/flag"}, &bytes.Buffer{})
	require.NoError(t, err)

	want := defaultsFor("farm.xml", func(c *app.Config) {
		c.OutputDir = "/from/flag"
		c.Firmware.Options.StackDepth = 4096
		c.Firmware.Options.Priority = 3
		c.Firmware.Options.JSONCapacity = 512
		c.Firmware.Secrets.Broker = "mqtt.example.com"
		c.Firmware.Secrets.Port = 8883
		c.Firmware.Secrets.SSID = "dotenv-net"
	})
	if diff := cmp.Diff(want, inv.Config); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "farm.xml"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
