// Package config loads runtime settings from defaults, an optional YAML
// file and VEGAN_CHECK_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/ocr"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// VEGAN_CHECK_OCR_LANGUAGE=deu sets ocr.language.
const EnvPrefix = "VEGAN_CHECK"

// FileName is the config file name searched for, without extension.
const FileName = "vegan-check"

// OCR configures the recognition backend.
type OCR struct {
	Backend     string `mapstructure:"backend"`
	Binary      string `mapstructure:"binary"`
	Language    string `mapstructure:"language"`
	PageSegMode int    `mapstructure:"page_seg_mode"`
}

// Extract configures bare-number matching per input channel.
type Extract struct {
	LenientText  bool `mapstructure:"lenient_text"`
	LenientImage bool `mapstructure:"lenient_image"`
}

// Reference points at a replacement reference table.
type Reference struct {
	// Path is a JSON table file. Empty means the bundled table.
	Path string `mapstructure:"path"`
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel  string    `mapstructure:"log_level"`
	OCR       OCR       `mapstructure:"ocr"`
	Extract   Extract   `mapstructure:"extract"`
	Reference Reference `mapstructure:"reference"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// OCROptions converts the OCR section for ocr.NewFactory.
func (c *Config) OCROptions() ocr.Options {
	return ocr.Options{
		Backend:     c.OCR.Backend,
		Binary:      c.OCR.Binary,
		Language:    c.OCR.Language,
		PageSegMode: c.OCR.PageSegMode,
	}
}

// Extractor converts the extract section.
func (c *Config) Extractor() enumber.Extractor {
	return enumber.Extractor{
		LenientText:  c.Extract.LenientText,
		LenientImage: c.Extract.LenientImage,
	}
}

func setDefaults(v *viper.Viper) {
	d := ocr.DefaultOptions()
	v.SetDefault("log_level", "info")
	v.SetDefault("ocr.backend", d.Backend)
	v.SetDefault("ocr.binary", d.Binary)
	v.SetDefault("ocr.language", d.Language)
	v.SetDefault("ocr.page_seg_mode", d.PageSegMode)
	v.SetDefault("extract.lenient_text", true)
	v.SetDefault("extract.lenient_image", false)
	v.SetDefault("reference.path", "")
}

// Load reads the configuration.
//
// If file is non-empty it must exist. Otherwise vegan-check.yaml is looked
// up in the working directory and then in $HOME/.config/vegan-check; a
// missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}
