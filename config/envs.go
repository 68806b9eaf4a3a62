package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	ErrMissingEnv = errors.New("environment variable is not set")
	ErrInvalidEnv = errors.New("environment variable has an invalid value")
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string  // Host IP for the server
	RESTPort         int     // Port for the REST API
	GinMode          string  // Mode for the Gin framework (e.g., release, debug, test)
	DBHost           string  // Hostname or IP address for the database
	DBPort           int     // Port number for the database
	DBUser           string  // Username for the database
	DBPassword       string  // Password for the database
	DBName           string  // Name of the database
	RedisAddr        string  // host:port of the Redis server holding maze layouts
	RedisPassword    string  // Password for the Redis server
	LayoutTTLSeconds int     // Expiry of stored layouts, 0 keeps them forever
	JWTSecret        string  // Secret key for JWT signing
	JWTIssuer        string  // Issuer claim for JWTs
	APIKeyHash       string  // bcrypt hash of the operator API key
	TrainEpisodes    int     // Default number of episodes per training run
	TrainStepCap     int     // Default episode step cap
	TrainAlpha       float64 // Default learning rate
	TrainEpsilon     float64 // Default initial exploration rate
}

// loader collects every lookup failure so all missing variables are reported at once.
type loader struct {
	errs []error
}

// Load reads the application configuration from the environment.
// Variables from a .env file are loaded first when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	l := &loader{}
	c := Config{
		HostIP:           l.mustGetEnv("HOST_IP"),
		RESTPort:         l.mustGetEnvAsInt("REST_PORT"),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		DBHost:           l.mustGetEnv("DB_HOST"),
		DBPort:           l.mustGetEnvAsInt("DB_PORT"),
		DBUser:           l.mustGetEnv("DB_USER"),
		DBPassword:       l.mustGetEnv("DB_PASS"),
		DBName:           l.mustGetEnv("DB_NAME"),
		RedisAddr:        l.mustGetEnv("REDIS_ADDR"),
		RedisPassword:    getEnvWithDefault("REDIS_PASS", ""),
		LayoutTTLSeconds: l.getEnvAsIntWithDefault("LAYOUT_TTL_SECONDS", 0),
		JWTSecret:        l.mustGetEnv("JWT_SECRET"),
		JWTIssuer:        l.mustGetEnv("JWT_ISSUER"),
		APIKeyHash:       l.mustGetEnv("API_KEY_HASH"),
		TrainEpisodes:    l.getEnvAsIntWithDefault("TRAIN_EPISODES", 5000),
		TrainStepCap:     l.getEnvAsIntWithDefault("TRAIN_STEP_CAP", 1000),
		TrainAlpha:       l.getEnvAsFloatWithDefault("TRAIN_ALPHA", 0.15),
		TrainEpsilon:     l.getEnvAsFloatWithDefault("TRAIN_EPSILON", 0.2),
	}

	return c, errors.Join(l.errs...)
}

// mustGetEnv retrieves the value of an environment variable or records an error if not set.
func (l *loader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		l.errs = append(l.errs, fmt.Errorf("%w: %s", ErrMissingEnv, key))
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer.
func (l *loader) mustGetEnvAsInt(key string) int {
	valueStr := l.mustGetEnv(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidEnv, key, err))
	}
	return value
}

func (l *loader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidEnv, key, err))
		return defaultValue
	}
	return value
}

func (l *loader) getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%w: %s must be a number: %v", ErrInvalidEnv, key, err))
		return defaultValue
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
