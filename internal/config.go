package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/cosmify/internal/apperr"
	"github.com/starford/cosmify/internal/convert"
	"github.com/starford/cosmify/internal/selector"
	"github.com/starford/cosmify/internal/watch"
	"github.com/starford/cosmify/internal/wikilink"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Vault   VaultConfig       `yaml:"vault"`
	Filter  FilterConfig      `yaml:"filter"`
	Convert ConvertConfig     `yaml:"convert"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Watch   WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Convert.Validate(); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// LogLevel returns the effective log level. Verbose runs log at least at Info.
func (c *Config) LogLevel() slog.Level {
	if c.Convert.Verbose && c.App.LogLevel > slog.LevelInfo {
		return slog.LevelInfo
	}
	return c.App.LogLevel
}

// PipelineOptions translates the configuration into conversion options.
func (c *Config) PipelineOptions() convert.Options {
	return convert.Options{
		Criteria: selector.Criteria{
			Type: c.Filter.Type,
			Tags: c.Filter.AllTags(),
		},
		IDMode:          convert.IDMode(c.Convert.IDMode),
		LinkStyle:       wikilink.Style(c.Convert.LinkStyle),
		TypedLinks:      c.Convert.TypedLinks,
		SemanticSection: c.Convert.SemanticSection,
		Reformat:        c.Convert.ReformatProperties,
		FolderToType:    c.Convert.FolderToType,
		RenameFiles:     c.Convert.RenameFiles,
		TitleMapFile:    c.Convert.TitleMapFile,
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.Required, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// VaultConfig holds the input vault and the output folder.
type VaultConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Validate validates the vault configuration. The output folder may be
// neither the input vault nor a folder inside it.
func (c *VaultConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Output, validation.Required),
	); err != nil {
		return err
	}
	inside, err := within(c.Input, c.Output)
	if err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	if inside {
		return fmt.Errorf("vault: output %q: %w", c.Output, apperr.ErrOutputInsideInput)
	}
	return nil
}

// within reports whether path is root or lies below it.
func within(root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// FilterConfig holds the note selection criteria.
type FilterConfig struct {
	Type string   `yaml:"type"`
	Tags []string `yaml:"tags"`
}

// AllTags returns the required tags, splitting entries that hold several
// space-separated tags.
func (c *FilterConfig) AllTags() []string {
	var out []string
	for _, t := range c.Tags {
		out = append(out, selector.SplitTags(t)...)
	}
	return out
}

// ConvertConfig holds the conversion switches.
type ConvertConfig struct {
	IDMode             string `yaml:"id_mode"`
	LinkStyle          string `yaml:"link_style"`
	TypedLinks         bool   `yaml:"typed_links"`
	SemanticSection    string `yaml:"semantic_section"`
	ReformatProperties bool   `yaml:"reformat_properties"`
	FolderToType       bool   `yaml:"folder_to_type"`
	Verbose            bool   `yaml:"verbose"`
	RenameFiles        bool   `yaml:"rename_files"`
	TitleMapFile       string `yaml:"title_map_file"`
}

// Validate validates the conversion configuration.
func (c *ConvertConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.IDMode, validation.Required,
			validation.In(string(convert.IDModeCounter), string(convert.IDModeCreationDate))),
		validation.Field(&c.LinkStyle, validation.Required,
			validation.In(string(wikilink.StyleBracketedID), string(wikilink.StyleMarkdownLink))),
		validation.Field(&c.TitleMapFile, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration. An empty path
// disables the conversion index.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Enabled reports whether the conversion index is configured.
func (c *SQLiteConfig) Enabled() bool {
	return c.Path != ""
}

// WatchConfig holds watch mode configuration.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelWarn,
			LogFormat: LogFormatText,
		},
		Vault: VaultConfig{
			Input:  "./vault",
			Output: "./cosma",
		},
		Convert: ConvertConfig{
			IDMode:       string(convert.IDModeCounter),
			LinkStyle:    string(wikilink.StyleBracketedID),
			RenameFiles:  true,
			TitleMapFile: convert.DefaultTitleMapFile,
		},
		Watch: WatchConfig{
			Debounce: watch.DefaultDebounce,
		},
	}
}
