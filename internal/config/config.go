package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type Config struct {
	Hash      int
	Threads   int
	Shortcuts bool
	Eval      string
	LogLevel  string
	EnvFile   string
	// Command is a one-shot command taken from the positional arguments.
	Command []string
}

// settings maps flags to the environment variables that supply their defaults.
var settings = []struct {
	flag, env string
}{
	{"hash", "COUNTER_HASH"},
	{"threads", "COUNTER_THREADS"},
	{"shortcuts", "COUNTER_SHORTCUTS"},
	{"eval", "COUNTER_EVAL"},
	{"log-level", "COUNTER_LOG_LEVEL"},
}

// Load parses command line flags. A flag missing from args takes its value
// from the process environment, then from the .env file.
func Load(args []string) (Config, error) {
	var cfg Config
	var flags = flag.NewFlagSet("counter", flag.ContinueOnError)
	flags.IntVar(&cfg.Hash, "hash", 16, "transposition table size in megabytes")
	flags.IntVar(&cfg.Threads, "threads", 1, "number of search threads")
	flags.BoolVar(&cfg.Shortcuts, "shortcuts", false, "accept abbreviated commands")
	flags.StringVar(&cfg.Eval, "eval", "", "evaluation function (pesto, material)")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	flags.StringVar(&cfg.EnvFile, "env", envOrDefault("COUNTER_ENV_FILE", defaultEnvFile), "environment file")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	var explicit = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var fileEnv, err = godotenv.Read(cfg.EnvFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cfg.EnvFile != defaultEnvFile {
			return Config{}, fmt.Errorf("read env file %v: %w", cfg.EnvFile, err)
		}
		fileEnv = nil
	}

	for _, s := range settings {
		if explicit[s.flag] {
			continue
		}
		var value, ok = os.LookupEnv(s.env)
		if !ok {
			value, ok = fileEnv[s.env]
		}
		if !ok {
			continue
		}
		if err := flags.Set(s.flag, value); err != nil {
			return Config{}, fmt.Errorf("%v: %w", s.env, err)
		}
	}

	if cfg.Hash < 1 || cfg.Hash > 1<<16 {
		return Config{}, fmt.Errorf("hash %v out of range", cfg.Hash)
	}
	if cfg.Threads < 1 || cfg.Threads > 512 {
		return Config{}, fmt.Errorf("threads %v out of range", cfg.Threads)
	}
	cfg.Command = flags.Args()
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
