package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/korhaliv/winsync/internal/app"
)

// Config captures runtime configuration for a window process.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRedisAddr      = "WINSYNC_REDIS_ADDR"
	envRoot           = "WINSYNC_ROOT"
	envWindowLabel    = "WINSYNC_WINDOW_LABEL"
	envPollMillis     = "WINSYNC_DRAG_POLL_MS"
	envHandshakeDelay = "WINSYNC_HANDSHAKE_DELAY_MS"
	envVerbose        = "WINSYNC_VERBOSE"
	envTrace          = "WINSYNC_TRACE"
	envLogFile        = "WINSYNC_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("winsync", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	redisAddr := fs.String("redis", envOrDefault(env, envRedisAddr, ""), "redis address for the cross-window bus (empty runs the window standalone)")
	root := fs.String("root", envOrDefault(env, envRoot, ""), "project root directory (defaults to the working directory)")
	label := fs.String("label", envOrDefault(env, envWindowLabel, ""), "stable window label (defaults to a generated one)")
	pollMS := fs.Int("drag-poll-ms", envOrInt(env, envPollMillis, 50), "drag hit-test poll cadence in milliseconds")
	handshakeMS := fs.Int("handshake-delay-ms", envOrInt(env, envHandshakeDelay, 200), "grace delay before replying to a window-ready announcement")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "surface sync activity in the status line")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *pollMS <= 0 {
		return Config{}, fmt.Errorf("drag-poll-ms must be > 0 (got %d)", *pollMS)
	}
	if *handshakeMS < 0 {
		return Config{}, fmt.Errorf("handshake-delay-ms must be >= 0 (got %d)", *handshakeMS)
	}

	resolvedRoot := *root
	if resolvedRoot == "" {
		if cwd, err := os.Getwd(); err == nil {
			resolvedRoot = cwd
		}
	}

	cfg := Config{
		App: app.Config{
			RedisAddr:      *redisAddr,
			Root:           resolvedRoot,
			WindowLabel:    *label,
			DragPoll:       time.Duration(*pollMS) * time.Millisecond,
			HandshakeDelay: time.Duration(*handshakeMS) * time.Millisecond,
			Verbose:        *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"redis":              *redisAddr,
			"root":               resolvedRoot,
			"label":              *label,
			"drag-poll-ms":       strconv.Itoa(*pollMS),
			"handshake-delay-ms": strconv.Itoa(*handshakeMS),
			"verbose":            strconv.FormatBool(*verbose),
			"trace":              strconv.FormatBool(*trace),
			"logFile":            *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Root == "" {
		return fmt.Errorf("project root could not be resolved; pass -root")
	}
	return nil
}
