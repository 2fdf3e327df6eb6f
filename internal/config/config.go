package config

import "os"

type Config struct {
	Port       string
	DBPath     string
	EventsPath string
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		Port:       envOr("PORT", "9095"),
		DBPath:     envOr("DB_PATH", "/app/data/charts.db"),
		EventsPath: envOr("EVENTS_PATH", "/app/data/events.json"),
	}
}
