package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &AppConfig{}
	if err := cfg.Normalize(); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "5000" || cfg.DBDriver != DBDriverPostgres || cfg.PurgeSchedule != DefaultPurgeSchedule {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.AMQP.Exchange != "calendar" || cfg.Mongo.Database != "takvim" {
		t.Errorf("unexpected defaults: amqp=%+v mongo=%+v", cfg.AMQP, cfg.Mongo)
	}
}

func TestNormalizeRejectsUnknownDriver(t *testing.T) {
	cfg := &AppConfig{DBDriver: "sqlite"}
	if err := cfg.Normalize(); err == nil {
		t.Fatal("expected error for unknown driver")
	}

	cfg = &AppConfig{DBDriver: " Memory "}
	if err := cfg.Normalize(); err != nil || cfg.DBDriver != DBDriverMemory {
		t.Errorf("driver = %q, err = %v", cfg.DBDriver, err)
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
env: development
port: "8080"
db_driver: mongo
mongo:
  uri: mongodb://localhost:27017
purge_schedule: "@every 30m"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"APP_ENV", "DB_DRIVER", "MONGODB_URI", "PURGE_SCHEDULE"} {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("env should override file: port = %q", cfg.Port)
	}
	if cfg.DBDriver != DBDriverMongo || cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.PurgeSchedule != "@every 30m" || !cfg.IsDevelopment() {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if GetConfig() != cfg {
		t.Error("GetConfig should return the loaded config")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}.DSN()
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if dsn != want {
		t.Errorf("DSN = %q", dsn)
	}
}

func TestLoadConfigRedisDB(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_DB", "3")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d, want 3", cfg.Redis.DB)
	}

	t.Setenv("REDIS_DB", "primary")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for non-numeric REDIS_DB")
	}
}
