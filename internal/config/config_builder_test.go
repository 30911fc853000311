package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_MergePriority(t *testing.T) {
	// mergo keeps the first non-zero value, so earlier sources win.
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Auth:      Auth{TokenSignKey: "from-env"},
			Assistant: Assistant{Primary: Provider{BaseURL: "https://env.example/v1"}},
		},
		&StructuredConfig{
			Auth:   Auth{TokenSignKey: "from-flags", TokenIssuer: "flag-issuer"},
			Server: Server{HTTPAddress: "flags:9000"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.TokenSignKey)
	assert.Equal(t, "flag-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, "flags:9000", cfg.Server.HTTPAddress)
}

func TestConfigBuilder_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Auth:      Auth{TokenSignKey: "secret"},
		Assistant: Assistant{Primary: Provider{BaseURL: "https://openrouter.ai/api/v1"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "opsboard.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "opsboard", cfg.Auth.TokenIssuer)
	assert.Equal(t, 8, cfg.Assistant.HistoryLimit)
	assert.Equal(t, 4096, cfg.Assistant.SnapshotMaxBytes)
	assert.Equal(t, 200, cfg.Assistant.SessionAskLimit)
}

func TestConfigBuilder_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *StructuredConfig
		wantErr error
	}{
		{
			name: "missing token sign key",
			cfg: &StructuredConfig{
				Assistant: Assistant{Primary: Provider{BaseURL: "https://x/v1"}},
			},
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name: "unsupported driver",
			cfg: &StructuredConfig{
				Auth:      Auth{TokenSignKey: "secret"},
				Storage:   Storage{DB: DB{Driver: "oracle"}},
				Assistant: Assistant{Primary: Provider{BaseURL: "https://x/v1"}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "missing primary provider",
			cfg: &StructuredConfig{
				Auth: Auth{TokenSignKey: "secret"},
			},
			wantErr: ErrInvalidAssistantConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.cfg)

			_, err := b.build()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expected: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IP", input: "127.0.0.1:9090", expected: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "bad port", input: "localhost:abc", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "bad host", input: "not-an-ip:8080", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}
