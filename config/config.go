package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lhcompare/format"
)

const (
	EnvPrefix     = "LHCOMPARE"
	DefaultListen = ":8080"
)

// Source tells where run sets come from.
type Source int

const (
	SourceNone Source = iota
	SourceFiles
	SourceServer
)

var (
	ErrNoSource      = errors.New("no run sets given: set --current and --baseline, or --server-url, --project and --build")
	ErrPartialSource = errors.New("incomplete run set source")
)

// Config is the configuration shared by all commands. Keys match flag names,
// so a config file, LHCOMPARE_* variables and flags all use the same names.
type Config struct {
	// Current and Baseline are run set files or lhci collect directories
	Current  string `mapstructure:"current"`
	Baseline string `mapstructure:"baseline"`
	Links    string `mapstructure:"links"`

	Format           string `mapstructure:"format"`
	Output           string `mapstructure:"output"`
	FailOnRegression bool   `mapstructure:"fail-on-regression"`
	TUI              bool   `mapstructure:"tui"`
	Debug            bool   `mapstructure:"debug"`

	// Lighthouse CI server
	ServerURL      string `mapstructure:"server-url"`
	Project        string `mapstructure:"project"`
	Build          string `mapstructure:"build"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	Representative bool   `mapstructure:"representative"`

	Listen string `mapstructure:"listen"`

	Actions ActionsEnv `mapstructure:"-"`
}

// ActionsEnv is what we read from a GitHub Actions runner.
type ActionsEnv struct {
	// RunnerDebug is set when a workflow is re-run with debug logging
	RunnerDebug bool `env:"RUNNER_DEBUG"`
	// StepSummary is the file the job summary markdown is appended to
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`
}

// New returns a viper instance reading LHCOMPARE_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("format", string(format.Markdown))
	v.SetDefault("listen", DefaultListen)
	return v
}

// BindFlags binds every flag of cmd, persistent ones included, to the key of the same name.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load reads the optional config file and unmarshals the merged configuration.
// Precedence is flags, then environment, then the file, then defaults.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := env.Parse(&cfg.Actions); err != nil {
		return Config{}, fmt.Errorf("failed to parse runner environment: %w", err)
	}
	return cfg, nil
}

// DebugEnabled reports whether debug logging was asked for, directly or by the runner.
func (c Config) DebugEnabled() bool {
	return c.Debug || c.Actions.RunnerDebug
}

// OutputFormat parses Format.
func (c Config) OutputFormat() (format.Format, error) {
	return format.ParseFormat(c.Format)
}

// Source returns where run sets should be read from. Files win over a server.
func (c Config) Source() (Source, error) {
	files := c.Current != "" || c.Baseline != ""
	server := c.ServerURL != "" || c.Project != "" || c.Build != ""

	switch {
	case files:
		if c.Current == "" || c.Baseline == "" {
			return SourceNone, fmt.Errorf("%w: both --current and --baseline are required", ErrPartialSource)
		}
		return SourceFiles, nil
	case server:
		if c.ServerURL == "" || c.Project == "" || c.Build == "" {
			return SourceNone, fmt.Errorf("%w: --server-url, --project and --build are required", ErrPartialSource)
		}
		return SourceServer, nil
	}
	return SourceNone, ErrNoSource
}

// SummaryPath returns the file markdown should be appended to when no output
// file is set: the job summary on a GitHub Actions runner, else "".
func (c Config) SummaryPath() string {
	if c.Output != "" {
		return ""
	}
	return c.Actions.StepSummary
}
