package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	// Config holds all the settings the application needs. It is built once in main
	// and passed down as a dependency; nothing reads configuration ambiently.
	Config struct {
		Env      string // DEV (default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		SecretKey    string
		RollbarToken string

		Server   ServerConfig
		Database DatabaseConfig
		Grader   GraderConfig
	}

	ServerConfig struct {
		Host               string
		Port               int
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       int
		DisableTLS bool
	}

	// GraderConfig configures the outbound answer-grading call.
	GraderConfig struct {
		BaseURL     string
		APIKey      string
		Model       string
		Temperature float64
		Timeout     time.Duration
		MaxRetries  uint
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig assembles the Config from defaults, an optional .env file and
// environment variables prefixed with the current ENV.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "Grove")
	v.SetDefault("secretKey", "x)#*c2(#yg4h^$cegm2emypoq5-wer)enb$+57=dz&uoxh2(h!")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "grove")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbDisableTLS", true)
	v.SetDefault("graderBaseURL", "https://api.openai.com/v1")
	v.SetDefault("graderModel", "gpt-4o-mini")
	v.SetDefault("graderTemperature", 0.2)
	v.SetDefault("graderTimeout", 30*time.Second)
	v.SetDefault("graderMaxRetries", 2)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     env == "TEST",
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetInt("serverPort"),
			ShutdownTimeout:    v.GetDuration("shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("dbEngine"),
			Name:       v.GetString("dbName"),
			User:       v.GetString("dbUser"),
			Password:   v.GetString("dbPassword"),
			Host:       v.GetString("dbHost"),
			Port:       v.GetInt("dbPort"),
			DisableTLS: v.GetBool("dbDisableTLS"),
		},
		Grader: GraderConfig{
			BaseURL:     v.GetString("graderBaseURL"),
			APIKey:      v.GetString("graderAPIKey"),
			Model:       v.GetString("graderModel"),
			Temperature: v.GetFloat64("graderTemperature"),
			Timeout:     v.GetDuration("graderTimeout"),
			MaxRetries:  uint(v.GetInt("graderMaxRetries")),
		},
	}
	return conf, nil
}
