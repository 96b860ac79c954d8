package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"CONVOVIEW_PORT", "CONVERSATIONS_FILE", "ATTACHMENTS_DIR", "CORS_ORIGIN",
		"LOG_LEVEL", "LOG_FILE", "NATS_URL", "NATS_TOKEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.ConversationsFile != "conversations.json" {
		t.Errorf("expected default conversations file, got %s", cfg.ConversationsFile)
	}
	if cfg.AttachmentsDir != "attachments" {
		t.Errorf("expected default attachments dir, got %s", cfg.AttachmentsDir)
	}
	if cfg.CORSOrigin != "http://localhost:3000" {
		t.Errorf("expected default cors origin, got %s", cfg.CORSOrigin)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Errorf("expected empty default log file, got %s", cfg.LogFile)
	}
	if cfg.NatsURL != "" {
		t.Errorf("expected empty default nats url, got %s", cfg.NatsURL)
	}
	if cfg.NatsToken != "" {
		t.Errorf("expected empty default nats token, got %s", cfg.NatsToken)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CONVOVIEW_PORT", "9999")
	t.Setenv("CONVERSATIONS_FILE", "/data/export.json")
	t.Setenv("ATTACHMENTS_DIR", "/data/files")
	t.Setenv("CORS_ORIGIN", "https://viewer.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/convoview.log")
	t.Setenv("NATS_URL", "nats://custom:4222")
	t.Setenv("NATS_TOKEN", "s3cr3t-token")

	cfg := Load()

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.ConversationsFile != "/data/export.json" {
		t.Errorf("expected custom conversations file, got %s", cfg.ConversationsFile)
	}
	if cfg.AttachmentsDir != "/data/files" {
		t.Errorf("expected custom attachments dir, got %s", cfg.AttachmentsDir)
	}
	if cfg.CORSOrigin != "https://viewer.example.com" {
		t.Errorf("expected custom cors origin, got %s", cfg.CORSOrigin)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.LogFile != "/var/log/convoview.log" {
		t.Errorf("expected custom log file, got %s", cfg.LogFile)
	}
	if cfg.NatsURL != "nats://custom:4222" {
		t.Errorf("expected custom nats url, got %s", cfg.NatsURL)
	}
	if cfg.NatsToken != "s3cr3t-token" {
		t.Errorf("expected custom nats token, got %s", cfg.NatsToken)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("CONVOVIEW_PORT", "notanumber")

	cfg := Load()

	if cfg.Port != 5000 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
}
