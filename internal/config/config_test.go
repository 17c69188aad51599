package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "test.db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 9090 || cfg.Addr() != ":9090" {
		t.Fatalf("port = %d", cfg.Port)
	}
	if cfg.JWTTTL != 2*time.Hour {
		t.Fatalf("jwt ttl = %v", cfg.JWTTTL)
	}
	if cfg.AIProvider != "none" || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "postgres ok", cfg: Config{DBDriver: "postgres", PostgresURL: "postgres://x", JWTSecret: "s", JWTTTL: time.Hour}},
		{name: "postgres without url", cfg: Config{DBDriver: "postgres", JWTSecret: "s", JWTTTL: time.Hour}, wantErr: true},
		{name: "unknown driver", cfg: Config{DBDriver: "mysql", JWTSecret: "s", JWTTTL: time.Hour}, wantErr: true},
		{name: "missing secret", cfg: Config{DBDriver: "sqlite", SQLitePath: "a.db", JWTTTL: time.Hour}, wantErr: true},
		{name: "zero ttl", cfg: Config{DBDriver: "sqlite", SQLitePath: "a.db", JWTSecret: "s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: " https://a.example, ,https://b.example "}
	want := []string{"https://a.example", "https://b.example"}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("AllowedOrigins() = %v, want %v", got, want)
	}
}
