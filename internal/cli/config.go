package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bjaus/markit/convert"
)

// fileConfig mirrors the TOML configuration file. Pointer fields
// distinguish "not set" from an explicit false; flags always win over
// file values.
type fileConfig struct {
	Output       string `toml:"output"`
	Tables       *bool  `toml:"tables"`
	Metadata     *bool  `toml:"metadata"`
	Images       *bool  `toml:"images"`
	EscapeHTML   *bool  `toml:"escape_html"`
	SortKeys     *bool  `toml:"sort_keys"`
	TableFormat  string `toml:"table_format"`
	ListStyle    string `toml:"list_style"`
	HeadingStyle string `toml:"heading_style"`
	DateFormat   string `toml:"date_format"`
	Language     string `toml:"language"`
	MaxFileSize  int64  `toml:"max_file_size"`
}

// loadConfig reads the TOML file at path. An empty path yields a zero
// config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// buildOptions layers conversion options: defaults, then the config
// file, then command-line flags.
func buildOptions(file fileConfig, flags *rootFlags) convert.Options {
	opts := convert.DefaultOptions()

	if file.Tables != nil {
		opts.IncludeTables = *file.Tables
	}
	if file.Metadata != nil {
		opts.IncludeMetadata = *file.Metadata
	}
	if file.Images != nil {
		opts.IncludeImages = *file.Images
	}
	if file.EscapeHTML != nil {
		opts.EscapeHTML = *file.EscapeHTML
	}
	if file.SortKeys != nil {
		opts.SortMapKeys = *file.SortKeys
	}
	if file.TableFormat != "" {
		opts.TableFormat = file.TableFormat
	}
	if file.ListStyle != "" {
		opts.ListStyle = file.ListStyle
	}
	if file.HeadingStyle != "" {
		opts.HeadingStyle = file.HeadingStyle
	}
	if file.DateFormat != "" {
		opts.DateFormat = file.DateFormat
	}
	if file.Language != "" {
		opts.Language = file.Language
	}
	if file.MaxFileSize > 0 {
		opts.MaxFileSize = file.MaxFileSize
	}

	if flags.noTables {
		opts.IncludeTables = false
	}
	if flags.noMetadata {
		opts.IncludeMetadata = false
	}
	if flags.noImages {
		opts.IncludeImages = false
	}
	if flags.escapeHTML {
		opts.EscapeHTML = true
	}
	if flags.sortKeys {
		opts.SortMapKeys = true
	}
	if flags.tableFormat != "" {
		opts.TableFormat = flags.tableFormat
	}
	if flags.listStyle != "" {
		opts.ListStyle = flags.listStyle
	}
	if flags.headingStyle != "" {
		opts.HeadingStyle = flags.headingStyle
	}
	if flags.dateFormat != "" {
		opts.DateFormat = flags.dateFormat
	}
	if flags.language != "" {
		opts.Language = flags.language
	}
	if flags.maxFileSize > 0 {
		opts.MaxFileSize = flags.maxFileSize
	}

	return opts
}
