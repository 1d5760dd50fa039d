package config

import "testing"

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Storage.Backend = "memory"
		c.Server.Port = 8000
		c.Authentication.Paseto.Mode = "local"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "postgres backend", mutate: func(c *Config) { c.Storage.Backend = "postgres" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "mongo" }, wantErr: true},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad paseto mode", mutate: func(c *Config) { c.Authentication.Paseto.Mode = "v2" }, wantErr: true},
		{name: "negative confirm ttl", mutate: func(c *Config) { c.Server.ConfirmTTLSeconds = -1 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.Server.RateLimit.Max = -5 }, wantErr: true},
		{name: "admin uuid", mutate: func(c *Config) {
			c.Authorization.BootstrapAdmins = []string{"7d444840-9dc0-11d1-b245-5ffdce74fad2"}
		}},
		{name: "admin not uuid", mutate: func(c *Config) { c.Authorization.BootstrapAdmins = []string{"root"} }, wantErr: true},
		{name: "sampling above one", mutate: func(c *Config) { c.Observability.Tracing.SamplingRate = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsProduction(t *testing.T) {
	var c Config
	if c.IsProduction() {
		t.Fatal("empty environment reported as production")
	}
	c.Server.Environment = "production"
	if !c.IsProduction() {
		t.Fatal("production environment not detected")
	}
}
