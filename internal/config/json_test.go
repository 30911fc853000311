package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"auth": {
			"bcrypt_cost": 10,
			"token_sign_key": "json-secret",
			"token_issuer": "json-issuer",
			"token_duration": "2h"
		},
		"storage": {
			"db": {"driver": "sqlite3", "dsn": "dash.db"},
			"csv": {
				"incidents_path": "incidents.csv",
				"tickets_path": "tickets.csv",
				"datasets_path": "datasets.csv"
			}
		},
		"server": {
			"http_address": "0.0.0.0:8081",
			"grpc_address": "0.0.0.0:9091",
			"request_timeout": "45s"
		},
		"assistant": {
			"primary": {"base_url": "https://openrouter.ai/api/v1", "api_key": "k1", "model": "m1"},
			"fallback": {"base_url": "https://backup.example/v1", "api_key": "k2", "model": "m2"},
			"request_timeout": "25s",
			"history_limit": 6,
			"snapshot_max_bytes": 1024,
			"session_ask_limit": 50
		},
		"workers": {"refresh_interval": "10m"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "json-secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "json-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenDuration)

	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "dash.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "incidents.csv", cfg.Storage.CSV.IncidentsPath)

	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Assistant.Primary.BaseURL)
	assert.Equal(t, "m2", cfg.Assistant.Fallback.Model)
	assert.Equal(t, 25*time.Second, cfg.Assistant.RequestTimeout)
	assert.Equal(t, 6, cfg.Assistant.HistoryLimit)
	assert.Equal(t, 1024, cfg.Assistant.SnapshotMaxBytes)
	assert.Equal(t, 50, cfg.Assistant.SessionAskLimit)

	assert.Equal(t, 10*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempJSON(t, `{not json`)
	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string duration", raw: `"90s"`, expected: 90 * time.Second},
		{name: "numeric nanoseconds", raw: `1000000000`, expected: time.Second},
		{name: "invalid string", raw: `"ninety seconds"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(90 * time.Second)
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
