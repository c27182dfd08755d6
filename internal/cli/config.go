package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fieldday-games/bingohunt/internal/identity"
	"github.com/fieldday-games/bingohunt/internal/poll"
)

// Config holds CLI configuration, resolved from flags, BINGOHUNT_* environment
// variables and an optional .env file, in that order of precedence.
type Config struct {
	ServerURL    string
	IdentityFile string
	PollInterval time.Duration
	Output       string
	Verbose      bool
}

// LoadConfig resolves configuration against the given flag set
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BINGOHUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", "http://localhost:8000")
	v.SetDefault("identity-file", identity.DefaultPath())
	v.SetDefault("poll-interval", poll.DefaultInterval)
	v.SetDefault("output", "text")
	v.SetDefault("verbose", false)

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := &Config{
		ServerURL:    v.GetString("server"),
		IdentityFile: v.GetString("identity-file"),
		PollInterval: v.GetDuration("poll-interval"),
		Output:       v.GetString("output"),
		Verbose:      v.GetBool("verbose"),
	}

	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}

	return cfg, nil
}

// newLogger builds the CLI logger. Verbose mode enables debug logging.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
