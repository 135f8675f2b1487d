package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".geoready"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file layout.
// Only credentials and provider selection live in the file; crawl
// behavior is flag-driven so invocations stay self-describing.
type File struct {
	// Provider selects the fetch provider ("direct" or "scrapingapi").
	Provider string `yaml:"provider"`

	// APIKey authenticates against the scraping API.
	APIKey string `yaml:"api_key"`

	// Endpoint overrides the scraping API base URL.
	Endpoint string `yaml:"endpoint"`

	// RenderJS asks the scraping provider to render JavaScript.
	RenderJS bool `yaml:"render_js"`

	// SMTP holds mail relay settings for report delivery.
	SMTP SMTPFile `yaml:"smtp"`
}

// SMTPFile is the smtp section of the configuration file.
type SMTPFile struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should treat that as fatal only when the path was user-specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. .geoready in the current directory
//  3. .geoready in the user's home directory
//  4. config.yaml in the XDG config directory for geoready
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}

// Apply merges file values into the config. File values only fill
// fields the flags left at their zero/default value, so flags always
// win over the file.
func (f *File) Apply(c *Config) {
	if f.Provider != "" && c.Provider == ProviderDirect {
		c.Provider = f.Provider
	}
	if f.APIKey != "" && c.APIKey == "" {
		c.APIKey = f.APIKey
	}
	if f.Endpoint != "" && c.ScrapingEndpoint == "" {
		c.ScrapingEndpoint = f.Endpoint
	}
	if f.RenderJS {
		c.RenderJS = true
	}

	if f.SMTP.Host != "" && c.SMTPHost == "" {
		c.SMTPHost = f.SMTP.Host
	}
	if f.SMTP.Port != 0 && c.SMTPPort == DefaultSMTPPort {
		c.SMTPPort = f.SMTP.Port
	}
	if f.SMTP.Username != "" && c.SMTPUsername == "" {
		c.SMTPUsername = f.SMTP.Username
	}
	if f.SMTP.Password != "" && c.SMTPPassword == "" {
		c.SMTPPassword = f.SMTP.Password
	}
	if f.SMTP.From != "" && c.MailFrom == "" {
		c.MailFrom = f.SMTP.From
	}
}
