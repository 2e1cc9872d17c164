package config

import "testing"

type sample struct {
	Addr  string `env:"GOPOLY_TEST_ADDR" envDefault:"localhost:1"`
	Level string `env:"GOPOLY_TEST_LEVEL" envDefault:"info"`
	Port  int    `env:"GOPOLY_TEST_PORT"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg sample
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:1" || cfg.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("GOPOLY_TEST_ADDR", "example:9")
	t.Setenv("GOPOLY_TEST_PORT", "42")
	var cfg sample
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "example:9" || cfg.Port != 42 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseEnvBadValue(t *testing.T) {
	t.Setenv("GOPOLY_TEST_PORT", "not-a-number")
	var cfg sample
	if err := ParseEnv(&cfg); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestParseEnvNonPointer(t *testing.T) {
	if err := ParseEnv(sample{}); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
}
