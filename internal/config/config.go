package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	EngineWorkers int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is fine; the docker compose setup injects
	// everything through the environment directly.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "9446",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		EngineWorkers:    4,
	}

	if v := os.Getenv("PORT"); len(v) != 0 {
		env.Port = v
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); len(v) != 0 {
		env.PostgresAddress = v
	}

	if v := os.Getenv("POSTGRES_PORT"); len(v) != 0 {
		env.PostgresPort = v
	}

	if v := os.Getenv("POSTGRES_DB"); len(v) != 0 {
		env.PostgresDB = v
	}

	if v := os.Getenv("POSTGRES_USERNAME"); len(v) != 0 {
		env.PostgresUsername = v
	}

	if v := os.Getenv("POSTGRES_PASSWORD"); len(v) != 0 {
		env.PostgresPassword = v
	}

	if v := os.Getenv("ENGINE_WORKERS"); len(v) != 0 {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		env.EngineWorkers = workers
	}

	return &env, nil
}

// ConnectionString builds the Postgres DSN used by both the server and the
// migration runner.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
