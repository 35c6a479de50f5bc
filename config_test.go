package deskauth

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultStorageKeys(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Storage.TokenKey != "token" || cfg.Storage.IdentityKey != "user" {
		t.Fatalf("unexpected storage keys: %+v", cfg.Storage)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, valid: true},
		{name: "empty base url", mutate: func(c *Config) { c.Client.BaseURL = "" }},
		{name: "relative base url", mutate: func(c *Config) { c.Client.BaseURL = "/api" }},
		{name: "negative timeout", mutate: func(c *Config) { c.Client.Timeout = -time.Second }},
		{name: "zero timeout", mutate: func(c *Config) { c.Client.Timeout = 0 }, valid: true},
		{name: "empty token key", mutate: func(c *Config) { c.Storage.TokenKey = "" }},
		{name: "identical keys", mutate: func(c *Config) { c.Storage.IdentityKey = c.Storage.TokenKey }},
		{name: "empty login route", mutate: func(c *Config) { c.Routes.Login = "" }},
		{name: "negative audit buffer", mutate: func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = -1
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
