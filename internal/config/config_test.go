package config

import (
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want %v", cfg.Server.RequestTimeout, 30*time.Second)
	}
	if cfg.Validation.MaxConcurrent != 8 {
		t.Errorf("Validation.MaxConcurrent = %d, want %d", cfg.Validation.MaxConcurrent, 8)
	}
	if cfg.Validation.MaxFileSize != 10485760 {
		t.Errorf("Validation.MaxFileSize = %d, want %d", cfg.Validation.MaxFileSize, 10485760)
	}
	if cfg.Validation.MaxWaitTime != 10*time.Second {
		t.Errorf("Validation.MaxWaitTime = %v, want %v", cfg.Validation.MaxWaitTime, 10*time.Second)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 60 {
		t.Errorf("Rate = %+v, want enabled at 60/min", cfg.Rate)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("VALIDATION_MAX_CONCURRENT", "2")
	t.Setenv("VALIDATION_MAX_WAIT_TIME", "250ms")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Validation.MaxConcurrent != 2 {
		t.Errorf("Validation.MaxConcurrent = %d, want %d", cfg.Validation.MaxConcurrent, 2)
	}
	if cfg.Validation.MaxWaitTime != 250*time.Millisecond {
		t.Errorf("Validation.MaxWaitTime = %v, want %v", cfg.Validation.MaxWaitTime, 250*time.Millisecond)
	}
	if cfg.Rate.Enabled {
		t.Error("Rate.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AlternateName(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{"PORT": "3000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}

	cfg, err = LoadFrom(mapLookup(map[string]string{"PORT": "3000", "SERVER_PORT": "4000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want primary name to win", cfg.Server.Port)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12 ,,192.168.0.0/16",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(want) {
		t.Fatalf("TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, want)
	}
	for i, v := range want {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestLoad_APIKeyRequiresKeys(t *testing.T) {
	_, err := LoadFrom(mapLookup(map[string]string{"REQUIRE_API_KEY": "true"}))
	if err == nil || !strings.Contains(err.Error(), "API_KEYS is empty") {
		t.Fatalf("LoadFrom() error = %v, want API_KEYS complaint", err)
	}

	cfg, err := LoadFrom(mapLookup(map[string]string{"REQUIRE_API_KEY": "true", "API_KEYS": "k1,k2"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if len(cfg.Security.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Security.APIKeys)
	}
}

func TestLoad_BlankUsesDefault(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{"SERVER_PORT": "   "}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "non-numeric port",
			env:     map[string]string{"SERVER_PORT": "eighty"},
			wantErr: "SERVER_PORT",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"VALIDATION_MAX_WAIT_TIME": "soon"},
			wantErr: "invalid duration",
		},
		{
			name:    "bad boolean",
			env:     map[string]string{"RATE_LIMIT_ENABLED": "sometimes"},
			wantErr: "invalid boolean",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"SERVER_PORT": "70000"},
			wantErr: "must be 1-65535",
		},
		{
			name:    "zero concurrency",
			env:     map[string]string{"VALIDATION_MAX_CONCURRENT": "0"},
			wantErr: "VALIDATION_MAX_CONCURRENT must be positive",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(mapLookup(tt.env))
			if err == nil {
				t.Fatal("LoadFrom() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: 0},
		Validation: ValidationConfig{},
		Rate:       RateLimitConfig{Enabled: true},
		Logging:    LoggingConfig{Level: "loud", Format: "text"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}

	for _, want := range []string{
		"SERVER_PORT",
		"SERVER_SHUTDOWN_TIMEOUT",
		"VALIDATION_MAX_FILE_SIZE",
		"VALIDATION_MAX_WAIT_TIME",
		"RATE_LIMIT_REQUESTS_PER_MINUTE",
		"LOG_LEVEL",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %s:\n%s", want, err)
		}
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"localhost", 443, "localhost:443"},
		{"", 3000, ":3000"},
		{"::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestConfig_String(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	s := cfg.String()
	for _, want := range []string{`Addr: "0.0.0.0:8080"`, "MaxConcurrent: 8", `Level: "info"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
}
