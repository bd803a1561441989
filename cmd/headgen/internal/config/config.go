package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/sideeffect/pkg/head"
)

// Config represents the optional head.yaml configuration.
type Config struct {
	Site  SiteConfig   `yaml:"site"`
	Pages []PageConfig `yaml:"pages"`
}

// SiteConfig contains site-wide metadata.
type SiteConfig struct {
	Name      string      `yaml:"name,omitempty"`
	BaseTitle string      `yaml:"base_title,omitempty"`
	Meta      []head.Meta `yaml:"meta,omitempty"`
}

// PageConfig describes one page to render.
type PageConfig struct {
	Path  string      `yaml:"path"`
	Title string      `yaml:"title,omitempty"`
	Meta  []head.Meta `yaml:"meta,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	SiteName   string
	BaseTitle  string
	SiteMeta   []head.Meta
	Pages      []PageConfig
}

// LoadOptional reads head.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "head.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read head.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse head.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads head.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	siteName := strings.TrimSpace(cfg.Site.Name)
	if siteName == "" {
		siteName = defaultSiteName(modulePath, dir)
	}

	baseTitle := strings.TrimSpace(cfg.Site.BaseTitle)
	if baseTitle == "" {
		baseTitle = siteName
	}

	pages := cfg.Pages
	if len(pages) == 0 {
		pages = []PageConfig{{Path: "/"}}
	}
	for i, page := range pages {
		if err := validatePagePath(page.Path); err != nil {
			return nil, fmt.Errorf("pages[%d]: %w", i, err)
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		SiteName:   siteName,
		BaseTitle:  baseTitle,
		SiteMeta:   cfg.Site.Meta,
		Pages:      pages,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultSiteName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "site"
	}
	return base
}

func validatePagePath(path string) error {
	if path == "" {
		return fmt.Errorf("page path must not be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("page path must start with '/' (got %q)", path)
	}
	return nil
}
