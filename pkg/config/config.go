// Package config loads declarative admin configuration from YAML: interface
// chrome, database connection, and per-model display overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	fastuiadmin "github.com/hasansezertasan/fastui-admin"
	"github.com/hasansezertasan/fastui-admin/pkg/view"
)

// Database selects the driver and DSN handed to session.Open.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Model is the per-model display configuration, keyed by model name in the
// config file. Nil capability pointers keep the library defaults.
type Model struct {
	Name           string   `yaml:"name"`
	Slug           string   `yaml:"slug"`
	Columns        []string `yaml:"columns"`
	ExcludeColumns []string `yaml:"exclude_columns"`
	PageSize       int      `yaml:"page_size"`
	Create         *bool    `yaml:"create"`
	Edit           *bool    `yaml:"edit"`
	Delete         *bool    `yaml:"delete"`
	Details        *bool    `yaml:"details"`
	Visible        *bool    `yaml:"visible"`
}

// Config is the root of the admin configuration file.
type Config struct {
	Title      string           `yaml:"title"`
	BaseURL    string           `yaml:"base_url"`
	LogoURL    string           `yaml:"logo_url"`
	FaviconURL string           `yaml:"favicon_url"`
	FooterText string           `yaml:"footer_text"`
	Listen     string           `yaml:"listen"`
	Database   Database         `yaml:"database"`
	Models     map[string]Model `yaml:"models"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Title:   "Admin",
		BaseURL: "/admin",
		Listen:  ":8080",
		Database: Database{
			Driver: "sqlite",
			DSN:    "file:admin.db",
		},
	}
}

// Parse unmarshals a YAML document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Database.Driver) == "" {
		return fmt.Errorf("config: database driver is required")
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("config: database dsn is required")
	}
	for key, m := range c.Models {
		if m.PageSize < 0 {
			return fmt.Errorf("config: model %s: page_size must be positive", key)
		}
	}
	return nil
}

// AdminOptions translates the file into admin constructor options.
func (c Config) AdminOptions() []fastuiadmin.OptionFn {
	opts := []fastuiadmin.OptionFn{
		fastuiadmin.WithTitle(c.Title),
		fastuiadmin.WithBaseURL(c.BaseURL),
	}
	if c.LogoURL != "" {
		opts = append(opts, fastuiadmin.WithLogoURL(c.LogoURL))
	}
	if c.FaviconURL != "" {
		opts = append(opts, fastuiadmin.WithFaviconURL(c.FaviconURL))
	}
	if c.FooterText != "" {
		opts = append(opts, fastuiadmin.WithFooterText(c.FooterText))
	}
	return opts
}

// Model returns the overrides registered under key, falling back to zero
// overrides.
func (c Config) Model(key string) Model {
	if c.Models == nil {
		return Model{}
	}
	return c.Models[key]
}

// ViewOptions translates per-model overrides into view options.
func (m Model) ViewOptions() []view.OptionFn {
	var opts []view.OptionFn
	if m.Name != "" {
		opts = append(opts, view.WithName(m.Name))
	}
	if m.Slug != "" {
		opts = append(opts, view.WithSlug(m.Slug))
	}
	if len(m.Columns) > 0 {
		opts = append(opts, view.WithColumns(m.Columns...))
	}
	if len(m.ExcludeColumns) > 0 {
		opts = append(opts, view.WithExcludedColumns(m.ExcludeColumns...))
	}
	if m.PageSize > 0 {
		opts = append(opts, view.WithPageSize(m.PageSize))
	}
	if m.Create != nil {
		opts = append(opts, view.WithCreate(*m.Create))
	}
	if m.Edit != nil {
		opts = append(opts, view.WithEdit(*m.Edit))
	}
	if m.Delete != nil {
		opts = append(opts, view.WithDelete(*m.Delete))
	}
	if m.Details != nil {
		opts = append(opts, view.WithDetails(*m.Details))
	}
	if m.Visible != nil {
		opts = append(opts, view.WithVisible(*m.Visible))
	}
	return opts
}
