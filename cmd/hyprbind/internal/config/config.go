// Package config loads the optional hyprbind.yaml project file and resolves
// defaults for everything it leaves out.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file.
const FileName = "hyprbind.yaml"

// LibraryEnv overrides the configured native library path.
const LibraryEnv = "HYPRBIND_LIBRARY"

// DefaultLibrary is the library name used when neither the environment nor
// the config names one.
const DefaultLibrary = "libhyprbind.so"

// Config represents the optional hyprbind.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Library LibraryConfig `yaml:"library"`
	Log     LogConfig     `yaml:"log"`
	Window  WindowConfig  `yaml:"window"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// LibraryConfig locates the native toolkit shim.
type LibraryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// WindowConfig holds defaults for layouts that leave the window unset.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	AppName     string
	AppID       string
	LibraryPath string
	LogLevel    log.Level
	Verbose     bool
	Window      WindowConfig
}

// LoadOptional reads hyprbind.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads hyprbind.yaml (if present) and resolves defaults. Unlike
// the config itself, a go.mod is optional: without one the directory name
// stands in for the module path.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	appID := strings.TrimSpace(cfg.App.ID)
	if appID == "" {
		appID = defaultAppID(modulePath, appName)
	}
	if err := validateAppID(appID); err != nil {
		return nil, err
	}

	libPath := os.Getenv(LibraryEnv)
	if libPath == "" {
		libPath = strings.TrimSpace(cfg.Library.Path)
	}
	if libPath == "" {
		libPath = DefaultLibrary
	} else if !filepath.IsAbs(libPath) && strings.ContainsRune(libPath, filepath.Separator) {
		// Relative paths are relative to the project, bare names go to the
		// dynamic loader's search path.
		libPath = filepath.Join(dir, libPath)
	}

	level := log.InfoLevel
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level, err = log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	window := cfg.Window
	if window.Title == "" {
		window.Title = appName
	}
	if window.Width < 0 || window.Height < 0 {
		return nil, fmt.Errorf("window size cannot be negative (%dx%d)", window.Width, window.Height)
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName,
		AppID:       appID,
		LibraryPath: libPath,
		LogLevel:    level,
		Verbose:     cfg.Log.Verbose,
		Window:      window,
	}, nil
}

// FindProjectRoot walks up from dir to the first directory holding
// hyprbind.yaml or go.mod. If there is none, dir itself is the root.
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := abs; ; {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(d, marker)); err == nil {
				return d, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return abs, nil
		}
		d = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "hyprbind_app"
	}
	return base
}

func defaultAppID(modulePath, appName string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	var pathParts []string
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		pathParts = append(pathParts, p)
	}

	segments := append(host, pathParts...)
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment)
	}

	return strings.Join(segments, ".")
}

// sanitizeSegment lowercases segment and keeps [a-z0-9_]. Hyphens become
// underscores, and a segment that would start with a digit or '_' gets an
// 'a' prefix.
func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)

	var out []rune
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-':
			out = append(out, '_')
		}
	}

	if len(out) == 0 {
		out = []rune("app")
	}

	if out[0] >= '0' && out[0] <= '9' || out[0] == '_' {
		out = append([]rune{'a'}, out...)
	}

	return string(out)
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	segments := strings.Split(appID, ".")
	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		}
		if segment[0] == '_' {
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
