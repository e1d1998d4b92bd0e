package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Interface constants carried by the add-recipe form and the dialogue window.
const (
	ModalCloseDelay       = 2 * time.Second
	MinIngredientRows     = 3
	DefaultIngredientRows = 6
	MaxIngredientRows     = 20
)

// Config holds the application configuration.
type Config struct {
	EnvVars  EnvVars   `json:"env"`
	Messages *Messages `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port               string `env:"PORT" envDefault:"8080"`
	DatabaseUrl        string `env:"DATABASE_URL"`
	JwtSecretKey       string `env:"JWT_SECRET_KEY"`
	RecipeAPIURL       string `env:"RECIPE_API_URL" envDefault:"https://forkify-api.herokuapp.com/api/v2/recipes"`
	NutritionAPIURL    string `env:"NUTRITION_API_URL" envDefault:"https://api.spoonacular.com"`
	NutritionAPIKey    string `env:"NUTRITION_API_KEY"`
	RequestTimeoutSec  int    `env:"REQUEST_TIMEOUT_SEC" envDefault:"10"`
	ResultsPerPage     int    `env:"RESULTS_PER_PAGE" envDefault:"10"`
	NutritionRPS       int    `env:"NUTRITION_RPS" envDefault:"5"`
	SessionIdleMinutes int    `env:"SESSION_IDLE_MINUTES" envDefault:"30"`
	AWSRegion          string `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string `env:"S3_BUCKET" optional:"true"`
	MessagesPath       string `env:"MESSAGES_PATH" envDefault:"configs/messages.yaml"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// RequestTimeout is the budget every outbound request races against.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.EnvVars.RequestTimeoutSec) * time.Second
}

// SessionIdleTimeout is how long a session may go without intents before it is dropped.
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.EnvVars.SessionIdleMinutes) * time.Minute
}

// ImageUploadEnabled reports whether the S3 image upload route should be mounted.
func (c *Config) ImageUploadEnabled() bool {
	return c.EnvVars.S3Bucket != "" && c.EnvVars.AWSRegion != ""
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
