package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/product-cache/internal/config"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newLogger(cfg, NewLoggerService(cfg), &buf)
	log.Info().Str("product_id", "1").Msg("cached")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not a JSON line: %v (%s)", err, buf.String())
	}
	if entry["service"] != config.ServiceName || entry["environment"] != "production" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["message"] != "cached" || entry["product_id"] != "1" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestLoggerHonorsLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Msg("dropped")

	if buf.Len() != 0 {
		t.Fatalf("info line written at warn level: %s", buf.String())
	}
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	if ls.GetApplication() != nil {
		t.Fatal("New Relic enabled without a license key")
	}
	ls.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Fatal("nil service returned an application")
	}
}
