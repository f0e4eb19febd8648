// Package config reads process configuration from the environment.
// The CLI loads a local .env file before this package is consulted.
package config

import "os"

// Config holds all environment-backed settings.
type Config struct {
	OpenAIKey   string // OPENAI_API_KEY, required for assistant features
	OpenAIModel string // OPENAI_MODEL
	DBPath      string // AUTOCONTAIN_DB, empty means the default cache location
	SourceDir   string // AUTOCONTAIN_SOURCE_DIR, where repositories are cloned
	ScriptsDir  string // AUTOCONTAIN_SCRIPTS_DIR, where generated scripts land
	TagsFile    string // AUTOCONTAIN_TAGS_FILE, the persist-tag registry
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() *Config {
	return &Config{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		DBPath:      os.Getenv("AUTOCONTAIN_DB"),
		SourceDir:   getEnv("AUTOCONTAIN_SOURCE_DIR", "source"),
		ScriptsDir:  getEnv("AUTOCONTAIN_SCRIPTS_DIR", "scripts"),
		TagsFile:    getEnv("AUTOCONTAIN_TAGS_FILE", "tags.txt"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
