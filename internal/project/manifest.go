package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sjavac/internal/version"
)

// DefaultSuffix is the required extension of checked source files.
const DefaultSuffix = ".sjava"

// CheckConfig is the [check] section.
type CheckConfig struct {
	Suffix         string   `toml:"suffix"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
	Jobs           int      `toml:"jobs"`
	DiskCache      bool     `toml:"disk-cache"`
	Exclude        []string `toml:"exclude"`
}

// Manifest describes a project's sjava.toml.
type Manifest struct {
	Path string // empty for the built-in defaults
	Root string
	Name string
	// Requires is the [tool].requires version constraint, if any.
	Requires string
	Check    CheckConfig
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrVersionMismatch indicates that this checker does not satisfy [tool].requires.
	ErrVersionMismatch = errors.New("checker version does not satisfy [tool].requires")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Check CheckConfig `toml:"check"`
	Tool  struct {
		Requires string `toml:"requires"`
	} `toml:"tool"`
}

// Default returns the configuration used when no manifest exists.
func Default() Manifest {
	return Manifest{
		Check: CheckConfig{
			Suffix:         DefaultSuffix,
			MaxDiagnostics: 100,
		},
	}
}

// LoadManifest parses sjava.toml at path. Missing keys keep their defaults.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	m := Default()
	m.Path = path
	m.Root = filepath.Dir(path)
	m.Name = strings.TrimSpace(cfg.Package.Name)
	m.Requires = strings.TrimSpace(cfg.Tool.Requires)
	if meta.IsDefined("check", "suffix") {
		m.Check.Suffix = cfg.Check.Suffix
	}
	if meta.IsDefined("check", "max-diagnostics") {
		m.Check.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	m.Check.Jobs = cfg.Check.Jobs
	m.Check.DiskCache = cfg.Check.DiskCache
	m.Check.Exclude = cfg.Check.Exclude

	if err := m.validate(); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Discover finds the manifest governing target and loads it. Without a
// manifest the defaults are returned.
func Discover(target string) (Manifest, error) {
	path, ok, err := FindManifest(target)
	if err != nil {
		return Manifest{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadManifest(path)
}

func (m *Manifest) validate() error {
	if !strings.HasPrefix(m.Check.Suffix, ".") || len(m.Check.Suffix) < 2 {
		return fmt.Errorf("[check].suffix must look like \".ext\", got %q", m.Check.Suffix)
	}
	if m.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative, got %d", m.Check.Jobs)
	}
	if m.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max-diagnostics must not be negative, got %d", m.Check.MaxDiagnostics)
	}
	return nil
}

// CheckVersion verifies [tool].requires against the running checker.
func (m *Manifest) CheckVersion() error {
	if m.Requires == "" {
		return nil
	}
	ok, err := version.Satisfies(m.Requires)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Path, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w (requires %s, running %s)", m.Path, ErrVersionMismatch, m.Requires, version.Version)
	}
	return nil
}

// Excluded reports whether a path relative to the project root matches one
// of the [check].exclude patterns. A pattern matches a path or any of its
// leading directories.
func (m *Manifest) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range m.Check.Exclude {
		pat = strings.TrimSuffix(filepath.ToSlash(pat), "/")
		for p := rel; p != "." && p != "" && p != "/"; p = filepath.ToSlash(filepath.Dir(p)) {
			if ok, _ := filepath.Match(pat, p); ok {
				return true
			}
		}
	}
	return false
}
