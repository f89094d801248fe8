package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "configs/development.yaml"

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	JWT JWT `yaml:"jwt"`

	Admin Admin `yaml:"admin"`

	Redis Redis `yaml:"redis"`

	Kafka Kafka `yaml:"kafka"`

	Cloudinary Cloudinary `yaml:"cloudinary"`
}

type Server struct {
	Address        string   `yaml:"address"`
	Mode           string   `yaml:"mode"`
	PublicURL      string   `yaml:"public_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Production reports whether cookies must be Secure and SameSite=None
func (s Server) Production() bool {
	return s.Mode == "production"
}

type JWT struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // In Hours
}

type Admin struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type Database struct {
	URL            string `yaml:"url"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	SSLMode        string `yaml:"sslmode"`
	MigrationsPath string `yaml:"migrations_path"`
}

// DSN returns the connection URL, preferring an explicit one
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// Redis is optional; an empty address disables the catalog cache
type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      int    `yaml:"ttl"` // In Seconds
}

// Kafka is optional; no brokers disables event publishing to Kafka
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

// Load reads the YAML file named by CONFIG_PATH (or the development default),
// then applies .env and environment overrides.
func Load() (*Config, error) {
	// A missing .env is fine, the process environment may already be set
	_ = godotenv.Load()

	cfg := defaults()

	configPath := defaultConfigPath
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	if err := cfg.readFile(configPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) || configPath != defaultConfigPath {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			Address:   ":5000",
			Mode:      "development",
			PublicURL: "http://localhost:5173",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:5174",
				"http://localhost:3000",
			},
		},
		Database: Database{
			Port:           5432,
			SSLMode:        "disable",
			MigrationsPath: "file://migrations",
		},
		JWT:        JWT{ExpiresIn: 24},
		Redis:      Redis{TTL: 300},
		Kafka:      Kafka{Topic: "restaurant.events"},
		Cloudinary: Cloudinary{Folder: "biteflow"},
	}
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Address = ":" + port
	}
	setString(&c.Server.Mode, "APP_MODE")
	if os.Getenv("NODE_ENV") == "production" {
		c.Server.Mode = "production"
	}
	setString(&c.Server.PublicURL, "PUBLIC_URL")
	setList(&c.Server.AllowedOrigins, "ALLOWED_ORIGINS")

	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.MigrationsPath, "MIGRATIONS_PATH")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setInt(&c.JWT.ExpiresIn, "JWT_EXPIRES_IN")

	setString(&c.Admin.Email, "ADMIN_EMAIL")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")

	setString(&c.Redis.Address, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")

	setList(&c.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&c.Kafka.Topic, "KAFKA_TOPIC")

	setString(&c.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&c.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&c.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.DBName == "") {
		missing = append(missing, "database url or host/dbname")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "jwt secret")
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		missing = append(missing, "admin credentials")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid configuration, missing %s", strings.Join(missing, ", "))
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("invalid configuration, jwt expires_in must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}
