package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              int
	ConversationsFile string
	AttachmentsDir    string
	CORSOrigin        string
	LogLevel          string
	LogFile           string
	NatsURL           string
	NatsToken         string
}

func Load() Config {
	return Config{
		Port:              envInt("CONVOVIEW_PORT", 5000),
		ConversationsFile: envStr("CONVERSATIONS_FILE", "conversations.json"),
		AttachmentsDir:    envStr("ATTACHMENTS_DIR", "attachments"),
		CORSOrigin:        envStr("CORS_ORIGIN", "http://localhost:3000"),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		LogFile:           envStr("LOG_FILE", ""),
		NatsURL:           envStr("NATS_URL", ""),
		NatsToken:         envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
