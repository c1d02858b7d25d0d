package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/psmgen/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Command names the lifecycle to run.
type Command string

const (
	CommandGenerate Command = "generate"
	CommandValidate Command = "validate"
	CommandWatch    Command = "watch"
)

// Invocation is a parsed command line: what to run and with which
// validated configuration.
type Invocation struct {
	Command Command
	Config  *app.Config
}

const envPrefix = "PSMGEN"

// Parse processes command-line arguments. It returns the invocation to run,
// a boolean indicating if the program should exit cleanly (help or usage
// was printed), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	var inv *Invocation
	root := newRootCommand(&inv)
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError("%s", err.Error())
	}
	if inv == nil {
		return nil, true, nil
	}
	return inv, false, nil
}

func newRootCommand(inv **Invocation) *cobra.Command {
	root := &cobra.Command{
		Use:   "psmgen [MODEL]",
		Short: "Generate FreeRTOS/MQTT firmware skeletons from a platform-specific model.",
		Long: `psmgen turns a platform-specific model of a cyber-physical system into one
Arduino sketch directory per component: a FreeRTOS task per thread, publisher
and listener tasks exchanging JSON over MQTT, and connectivity helpers.

MODEL is an .xml, .hcl, .yaml or .yml file. Running psmgen with a model and
no subcommand is the same as "psmgen generate MODEL".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			return capture(cmd, inv, CommandGenerate, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.String("config", "", "Path to a configuration file (yaml, toml or json).")
	pf.String("env-file", ".env", "Path to a dotenv file loaded into the environment. Ignored when absent.")
	pf.Bool("debug", true, "Initial value of the generated firmware's debug flag.")
	addOutputFlags(root.Flags())

	generate := &cobra.Command{
		Use:   "generate MODEL",
		Short: "Generate firmware for every component of the model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return capture(cmd, inv, CommandGenerate, args[0])
		},
	}
	addOutputFlags(generate.Flags())

	validate := &cobra.Command{
		Use:   "validate MODEL",
		Short: "Check the model and print what would be generated, without writing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return capture(cmd, inv, CommandValidate, args[0])
		},
	}

	watch := &cobra.Command{
		Use:   "watch MODEL",
		Short: "Generate, then regenerate whenever the model file changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return capture(cmd, inv, CommandWatch, args[0])
		},
	}
	addOutputFlags(watch.Flags())
	watch.Flags().Int("healthcheck-port", 0, "Port for the /health and /metrics server. 0 is disabled.")
	watch.Flags().Duration("debounce", app.DefaultConfig().Debounce, "Quiet period after a change before regenerating.")

	root.AddCommand(generate, validate, watch)
	return root
}

func addOutputFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", app.DefaultConfig().OutputDir, "Directory the component directories are written to.")
	fs.String("metrics-file", "", "Write run metrics in Prometheus text format to this file.")
}

func capture(cmd *cobra.Command, inv **Invocation, command Command, modelPath string) error {
	cfg, err := buildConfig(cmd.Flags(), modelPath)
	if err != nil {
		return err
	}
	*inv = &Invocation{Command: command, Config: cfg}
	return nil
}

// buildConfig layers flags over environment over config file over defaults.
func buildConfig(flags *pflag.FlagSet, modelPath string) (*app.Config, error) {
	if err := loadEnvFile(flags); err != nil {
		return nil, err
	}

	v := viper.New()
	defaults := app.DefaultConfig()
	fw := defaults.Firmware
	v.SetDefault("output", defaults.OutputDir)
	v.SetDefault("metrics-file", "")
	v.SetDefault("healthcheck-port", 0)
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("firmware.stack_depth", fw.Options.StackDepth)
	v.SetDefault("firmware.priority", fw.Options.Priority)
	v.SetDefault("firmware.json_capacity", fw.Options.JSONCapacity)
	v.SetDefault("firmware.serial_baud", fw.Options.SerialBaud)
	v.SetDefault("firmware.idle_delay_ms", fw.Options.IdleDelayMS)
	v.SetDefault("wifi.ssid", fw.Secrets.SSID)
	v.SetDefault("wifi.password", fw.Secrets.Password)
	v.SetDefault("mqtt.broker", fw.Secrets.Broker)
	v.SetDefault("mqtt.port", fw.Secrets.Port)

	if err := v.BindPFlags(flags); err != nil {
		return nil, usageError("binding flags: %v", err)
	}
	if err := v.BindPFlag("firmware.debug", flags.Lookup("debug")); err != nil {
		return nil, usageError("binding flags: %v", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, usageError("reading config file %s: %v", path, err)
		}
	}

	cfg := app.Config{
		ModelPath:       modelPath,
		OutputDir:       v.GetString("output"),
		LogFormat:       strings.ToLower(v.GetString("log-format")),
		LogLevel:        strings.ToLower(v.GetString("log-level")),
		HealthcheckPort: v.GetInt("healthcheck-port"),
		MetricsFile:     v.GetString("metrics-file"),
		Debounce:        v.GetDuration("debounce"),
	}
	cfg.Firmware.Options.Debug = v.GetBool("firmware.debug")
	cfg.Firmware.Options.StackDepth = v.GetInt("firmware.stack_depth")
	cfg.Firmware.Options.Priority = v.GetInt("firmware.priority")
	cfg.Firmware.Options.JSONCapacity = v.GetInt("firmware.json_capacity")
	cfg.Firmware.Options.SerialBaud = v.GetInt("firmware.serial_baud")
	cfg.Firmware.Options.IdleDelayMS = v.GetInt("firmware.idle_delay_ms")
	cfg.Firmware.Secrets.SSID = v.GetString("wifi.ssid")
	cfg.Firmware.Secrets.Password = v.GetString("wifi.password")
	cfg.Firmware.Secrets.Broker = v.GetString("mqtt.broker")
	cfg.Firmware.Secrets.Port = v.GetInt("mqtt.port")

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return validated, nil
}

// loadEnvFile loads the dotenv file into the process environment. The
// default file may be absent; an explicitly named one must exist.
func loadEnvFile(flags *pflag.FlagSet) error {
	path, err := flags.GetString("env-file")
	if err != nil || path == "" {
		return nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if flags.Changed("env-file") {
			return usageError("env file %s: %v", path, statErr)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return usageError("loading env file %s: %v", path, err)
	}
	return nil
}
