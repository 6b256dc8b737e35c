package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up from the target directory upwards.
const FileName = "lintmerge.toml"

const (
	defaultOutputDir = "static_analysis_reports"
	defaultTimeout   = "10m"
	defaultJobs      = 3
	defaultStandard  = "c++20"
)

type Discovery struct {
	Headers          []string `toml:"headers"`
	Sources          []string `toml:"sources"`
	Benchmarks       []string `toml:"benchmarks"`
	HeaderExts       []string `toml:"header_exts"`
	SourceExts       []string `toml:"source_exts"`
	RespectGitignore bool     `toml:"respect_gitignore"`
}

type ClangTidy struct {
	Enabled      bool   `toml:"enabled"`
	Binary       string `toml:"binary"`
	ConfigFile   string `toml:"config_file"`
	HeaderFilter string `toml:"header_filter"`
	Fix          bool   `toml:"fix"`
}

type Cppcheck struct {
	Enabled      bool     `toml:"enabled"`
	Binary       string   `toml:"binary"`
	Enable       string   `toml:"enable"`
	Platform     string   `toml:"platform"`
	Inconclusive bool     `toml:"inconclusive"`
	Suppress     []string `toml:"suppress"`
	Target       string   `toml:"target"`
}

type ClangAnalyzer struct {
	Enabled  bool   `toml:"enabled"`
	Binary   string `toml:"binary"`
	Checkers string `toml:"checkers"`
}

type Tools struct {
	ClangTidy     ClangTidy     `toml:"clang_tidy"`
	Cppcheck      Cppcheck      `toml:"cppcheck"`
	ClangAnalyzer ClangAnalyzer `toml:"clang_analyzer"`
}

type Config struct {
	Project     string    `toml:"project"`
	OutputDir   string    `toml:"output_dir"`
	Jobs        int       `toml:"jobs"`
	Timeout     string    `toml:"timeout"`
	Standard    string    `toml:"standard"`
	IncludeDirs []string  `toml:"include_dirs"`
	Discovery   Discovery `toml:"discovery"`
	Tools       Tools     `toml:"tools"`
}

func Default() Config {
	return Config{
		OutputDir:   defaultOutputDir,
		Jobs:        defaultJobs,
		Timeout:     defaultTimeout,
		Standard:    defaultStandard,
		IncludeDirs: []string{"include"},
		Discovery: Discovery{
			Headers:          []string{"include"},
			Sources:          []string{"tests"},
			Benchmarks:       []string{"benchmarks"},
			HeaderExts:       []string{".h", ".hpp"},
			SourceExts:       []string{".cpp", ".cc", ".cxx"},
			RespectGitignore: true,
		},
		Tools: Tools{
			ClangTidy: ClangTidy{
				Enabled:      true,
				Binary:       "clang-tidy",
				ConfigFile:   ".clang-tidy",
				HeaderFilter: ".*include/.*",
			},
			Cppcheck: Cppcheck{
				Enabled:      true,
				Binary:       "cppcheck",
				Enable:       "all",
				Platform:     "native",
				Inconclusive: true,
				Suppress: []string{
					"missingIncludeSystem",
					"unusedFunction",
					"unmatchedSuppression",
					"noExplicitConstructor",
					"passedByValue",
					"useStlAlgorithm",
				},
				Target: "include",
			},
			ClangAnalyzer: ClangAnalyzer{
				Binary:   "clang",
				Checkers: "core,cplusplus,deadcode,security",
			},
		},
	}
}

// Load searches startDir and its parents for FileName and decodes it over
// the defaults. The returned path is empty when no file was found.
func Load(startDir string) (Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Default(), "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg, err := LoadFile(candidate)
			return cfg, candidate, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cfg := Default()
	return cfg, "", cfg.Validate()
}

// LoadFile decodes one TOML file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir is required")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := c.ToolTimeout(); err != nil {
		return err
	}
	if len(c.Discovery.Headers) == 0 {
		return errors.New("discovery.headers must name at least one directory")
	}
	return nil
}

// ToolTimeout is the per-tool deadline; zero disables it.
func (c Config) ToolTimeout() (time.Duration, error) {
	v := strings.TrimSpace(c.Timeout)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", v)
	}
	return d, nil
}

// EnabledTools lists enabled tool ids in run order.
func (c Config) EnabledTools() []string {
	var out []string
	if c.Tools.ClangTidy.Enabled {
		out = append(out, "clang-tidy")
	}
	if c.Tools.Cppcheck.Enabled {
		out = append(out, "cppcheck")
	}
	if c.Tools.ClangAnalyzer.Enabled {
		out = append(out, "clang-analyzer")
	}
	return out
}
