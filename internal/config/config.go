package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Data           DataConfig           `mapstructure:"data"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type DataConfig struct {
	StudentsFile      string `mapstructure:"students_file"`
	OpportunitiesFile string `mapstructure:"opportunities_file"`
	FeedbackFile      string `mapstructure:"feedback_file"`
}

// RecommendationConfig carries every tunable of the ranking engine. The two
// fusion weights must sum to 1.0 and the candidate pool must be at least as
// wide as the default result count.
type RecommendationConfig struct {
	ContentWeight       float64      `mapstructure:"content_weight"`
	CollaborativeWeight float64      `mapstructure:"collaborative_weight"`
	CandidatePool       int          `mapstructure:"candidate_pool"`
	DefaultTopN         int          `mapstructure:"default_top_n"`
	Rating              RatingConfig `mapstructure:"rating"`
}

// RatingConfig bounds the valid rating scale and fixes the neutral value
// served for students or internships with no rating history.
type RatingConfig struct {
	Min     int     `mapstructure:"min"`
	Max     int     `mapstructure:"max"`
	Neutral float64 `mapstructure:"neutral"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("internmatch")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Recommendation.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects weight and bound combinations the engine cannot serve.
func (c *RecommendationConfig) Validate() error {
	if c.ContentWeight < 0 || c.CollaborativeWeight < 0 {
		return fmt.Errorf("recommendation: fusion weights must be non-negative, got %.2f/%.2f",
			c.ContentWeight, c.CollaborativeWeight)
	}
	if sum := c.ContentWeight + c.CollaborativeWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("recommendation: fusion weights must sum to 1.0, got %.3f", sum)
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("recommendation: default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.CandidatePool < c.DefaultTopN {
		return fmt.Errorf("recommendation: candidate_pool (%d) must be at least default_top_n (%d)",
			c.CandidatePool, c.DefaultTopN)
	}
	// 0 marks an unrated cell in the rating matrix, so the valid scale must
	// start above it.
	if c.Rating.Min < 1 {
		return fmt.Errorf("recommendation: rating min must be at least 1, got %d", c.Rating.Min)
	}
	if c.Rating.Min >= c.Rating.Max {
		return fmt.Errorf("recommendation: rating bounds [%d,%d] are not a valid range",
			c.Rating.Min, c.Rating.Max)
	}
	if c.Rating.Neutral < float64(c.Rating.Min) || c.Rating.Neutral > float64(c.Rating.Max) {
		return fmt.Errorf("recommendation: neutral rating %.1f is outside [%d,%d]",
			c.Rating.Neutral, c.Rating.Min, c.Rating.Max)
	}
	return nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	viper.SetDefault("auth.token_ttl", "24h")

	// Data defaults
	viper.SetDefault("data.students_file", "./data/students.csv")
	viper.SetDefault("data.opportunities_file", "./data/internships.csv")
	viper.SetDefault("data.feedback_file", "./data/feedback.csv")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization"})

	// Engine defaults: content-weighted fusion over a pool of 20 candidates
	viper.SetDefault("recommendation.content_weight", 0.6)
	viper.SetDefault("recommendation.collaborative_weight", 0.4)
	viper.SetDefault("recommendation.candidate_pool", 20)
	viper.SetDefault("recommendation.default_top_n", 5)
	viper.SetDefault("recommendation.rating.min", 1)
	viper.SetDefault("recommendation.rating.max", 5)
	viper.SetDefault("recommendation.rating.neutral", 3.0)
}
