package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store by default, got %s", cfg.StoreDriver)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.JWTExpiresIn != 24*time.Hour || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "auth_system" {
		t.Fatalf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.IsProduction() {
		t.Fatalf("development must not be production")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"JWT_EXPIRES_IN": "90m",
		"BCRYPT_COST":    "12",
		"STORE_DRIVER":   "redis",
		"REDIS_ADDR":     "cache:6380",
		"REDIS_DB":       "2",
		"ENV":            "production",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Auth.JWTExpiresIn != 90*time.Minute || cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.StoreDriver != StoreRedis || cfg.Redis.Addr != "cache:6380" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadWith_UnknownStore(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unsupported store driver")
	}
}
