package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr      string
		Debug     bool
		StaticDir string
	}
	Database struct {
		Path string
	}
	Session struct {
		Secret     string
		CookieName string
		TTLMinutes int
		Secure     bool
	}
	Catalog struct {
		Root   string
		Key    string
		Bucket string
	}
	Storage struct {
		Region   string
		Endpoint string
	}
	AWS struct {
		Profile string
	}
	Site struct {
		Locale string
	}
	Log struct {
		Level string
	}
}

// SessionTTL is the configured session lifetime. Zero means the cookie lives
// for the browser session.
func (c Config) SessionTTL() time.Duration {
	if c.Session.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// Validate reports configuration that prevents the web server from starting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("session secret is required")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.Site.Locale {
	case "en", "ru":
	default:
		return fmt.Errorf("unsupported site locale %q", c.Site.Locale)
	}
	return nil
}

// Load reads configuration from environment variables and optional config files.
// An empty configPath searches the working directory for a file named "config".
func Load(configPath string) (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("SIMRIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.staticdir", "static")
	v.SetDefault("database.path", "users.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookiename", "session")
	v.SetDefault("session.ttlminutes", 0)
	v.SetDefault("session.secure", false)
	v.SetDefault("catalog.root", "static")
	v.SetDefault("catalog.key", "data/products.json")
	v.SetDefault("catalog.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("site.locale", "en")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional file
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Site.Locale = strings.ToLower(strings.TrimSpace(cfg.Site.Locale))

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
