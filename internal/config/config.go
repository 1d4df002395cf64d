package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imgcopy/internal/domain"

	"github.com/joho/godotenv"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceDir = "/Users/antonelloguarnieri/Desktop/sito web/Immagini lavori/lavori/gpf/"
	DefaultTargetDir = "/Users/antonelloguarnieri/Desktop/sito web/Prod3/progetti/gpf/img/"
)

var DefaultFiles = []string{"gpf_blocco_uno.jpg", "gpf_blocco_due_uno.jpg", "gpf_blocco_due_due.jpg"}

type Config struct {
	SourceDir string   `yaml:"source"`
	TargetDir string   `yaml:"target"`
	Files     []string `yaml:"files"`
	Verbosity int      `yaml:"verbose"`
	TUI       bool     `yaml:"tui"`
}

// Overrides carries values given on the command line. Zero values mean "not
// set" and leave lower layers untouched.
type Overrides struct {
	ConfigFile string
	EnvFile    string
	SourceDir  string
	TargetDir  string
	Files      []string
	Verbosity  int
	TUI        bool
}

func Default() Config {
	return Config{
		SourceDir: DefaultSourceDir,
		TargetDir: DefaultTargetDir,
		Files:     append([]string(nil), DefaultFiles...),
	}
}

func (c Config) Batch() domain.CopyBatch {
	return domain.CopyBatch{
		SourceDir: c.SourceDir,
		TargetDir: c.TargetDir,
		Files:     append([]string(nil), c.Files...),
	}
}

// Load layers defaults, the YAML file, the environment and finally the
// command line, then validates the result.
func Load(o Overrides) (Config, error) {
	cfg := Default()

	if o.ConfigFile != "" {
		fileCfg, err := LoadFile(o.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fileCfg)
	}

	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Errorf("loading %s: %w", o.EnvFile, err)
		}
	}
	cfg = merge(cfg, fromEnv())

	cfg = merge(cfg, Config{
		SourceDir: o.SourceDir,
		TargetDir: o.TargetDir,
		Files:     o.Files,
		Verbosity: o.Verbosity,
		TUI:       o.TUI,
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" || strings.TrimSpace(c.TargetDir) == "" {
		return errors.New("source and target are required")
	}
	if len(c.Files) == 0 {
		return errors.New("at least one file is required")
	}
	for _, name := range c.Files {
		if !filepath.IsLocal(name) || filepath.Clean(name) == "." {
			return errors.Errorf("file %q must be a relative name inside the source directory", name)
		}
	}
	return nil
}

func merge(base, top Config) Config {
	if top.SourceDir != "" {
		base.SourceDir = top.SourceDir
	}
	if top.TargetDir != "" {
		base.TargetDir = top.TargetDir
	}
	if len(top.Files) > 0 {
		base.Files = append([]string(nil), top.Files...)
	}
	if top.Verbosity > base.Verbosity {
		base.Verbosity = top.Verbosity
	}
	if top.TUI {
		base.TUI = true
	}
	return base
}

func fromEnv() Config {
	cfg := Config{
		SourceDir: envOrEmpty("IMGCOPY_SOURCE_DIR"),
		TargetDir: envOrEmpty("IMGCOPY_TARGET_DIR"),
		Files:     splitList(envOrEmpty("IMGCOPY_FILES")),
	}
	if raw := envOrEmpty("IMGCOPY_VERBOSE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Verbosity = n
		} else if envTruthy("IMGCOPY_VERBOSE") {
			cfg.Verbosity = 1
		}
	}
	return cfg
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
