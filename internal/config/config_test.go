package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	strongSecret := "secure-secret-at-least-32-chars-long"

	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{
			name:        "missing port",
			cfg:         Config{JWTSecret: strongSecret},
			expectError: true,
		},
		{
			name:        "missing JWT secret",
			cfg:         Config{Port: "8390"},
			expectError: true,
		},
		{
			name: "development with defaults",
			cfg: Config{
				Port:      "8390",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
			expectError: false,
		},
		{
			name: "production with default JWT secret",
			cfg: Config{
				Port:       "8390",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "secure-password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "production with short JWT secret",
			cfg: Config{
				Port:       "8390",
				JWTSecret:  "short",
				DBPassword: "secure-password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "production with weak DB password",
			cfg: Config{
				Port:       "8390",
				JWTSecret:  strongSecret,
				DBPassword: "password",
				Env:        "production",
			},
			expectError: true,
		},
		{
			name: "production fully configured",
			cfg: Config{
				Port:       "8390",
				JWTSecret:  strongSecret,
				DBPassword: "secure-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
			expectError: false,
		},
		{
			name: "prod alias is treated as production",
			cfg: Config{
				Port:       "8390",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "secure-password",
				Env:        "prod",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
