package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pink-tools/pink-core"
	"gopkg.in/yaml.v3"

	"github.com/pink-tools/pink-lockscreen/internal/winreg"
)

const (
	ServiceName = "pink-lockscreen"

	PersonalizationKey = `SOFTWARE\Policies\Microsoft\Windows\Personalization`
	LockScreenValue    = "LockScreenImage"
	DefaultImage       = `C:\tmp.jpg`
)

// Config holds the settings the CLI starts from before flags are applied.
type Config struct {
	DefaultImage string `yaml:"default_image"`
	Hive         string `yaml:"hive"`
	CreateKey    *bool  `yaml:"create_key,omitempty"`
	Encoding     string `yaml:"encoding"`
}

func Default() Config {
	create := true
	return Config{
		DefaultImage: DefaultImage,
		Hive:         winreg.LocalMachine.String(),
		CreateKey:    &create,
		Encoding:     winreg.EncodingNative.String(),
	}
}

func ServiceDir() string {
	return core.ServiceDir(ServiceName)
}

// File returns the config file path, LOCKSCREEN_CONFIG overriding the
// default location in the service directory.
func File() string {
	if p := os.Getenv("LOCKSCREEN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ServiceDir(), "config.yaml")
}

// Load reads the file at path over the defaults and then applies
// environment overrides. A missing file is not an error. The result is not
// validated; callers apply their flags first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.merge(file)
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if img := os.Getenv("LOCKSCREEN_DEFAULT_IMAGE"); img != "" {
		cfg.DefaultImage = img
	}

	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.DefaultImage != "" {
		c.DefaultImage = o.DefaultImage
	}
	if o.Hive != "" {
		c.Hive = o.Hive
	}
	if o.CreateKey != nil {
		c.CreateKey = o.CreateKey
	}
	if o.Encoding != "" {
		c.Encoding = o.Encoding
	}
}

func (c Config) Validate() error {
	if _, err := winreg.ParseHive(c.Hive); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := winreg.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) HiveValue() winreg.Hive {
	h, _ := winreg.ParseHive(c.Hive)
	return h
}

func (c Config) EncodingValue() winreg.Encoding {
	e, _ := winreg.ParseEncoding(c.Encoding)
	return e
}

func (c Config) CreateMissing() bool {
	return c.CreateKey == nil || *c.CreateKey
}
