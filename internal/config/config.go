package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	JWTSecret    string        `yaml:"jwt_secret"`
	APITimeout   time.Duration `yaml:"timeout"`
	DatabasePath string        `yaml:"database_path"`
	UploadDir    string        `yaml:"upload_dir"`
	// TokenDuration is the bearer token lifetime. Tokens are stateless;
	// this is the only revocation mechanism.
	TokenDuration time.Duration `yaml:"token_duration"`
	// AllowedOrigins is the CORS allow-list. Unmatched origins are
	// currently logged and then allowed anyway; tighten before exposing
	// the admin API beyond development.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig builds configuration from defaults, environment variables and
// an optional YAML file (highest precedence). A .env file in the working
// directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	// best-effort; absence of a .env file is the normal case
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("PORTFOLIO_ADDR", ":5000"),
		JWTSecret:     getEnv("PORTFOLIO_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("PORTFOLIO_DATABASE_PATH", "portfolio.db"),
		UploadDir:     getEnv("PORTFOLIO_UPLOAD_DIR", "uploads"),
		TokenDuration: 30 * 24 * time.Hour,
	}
	if origins := getEnv("PORTFOLIO_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
