package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so operators can keep a readable config file.
type StructuredJSONConfig struct {
	Auth struct {
		BcryptCost             int      `json:"bcrypt_cost"`
		TokenSignKey           string   `json:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer"`
		TokenDuration          Duration `json:"token_duration"`
		BootstrapAdminUsername string   `json:"bootstrap_admin_username"`
		BootstrapAdminPassword string   `json:"bootstrap_admin_password"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		CSV struct {
			IncidentsPath string `json:"incidents_path"`
			TicketsPath   string `json:"tickets_path"`
			DatasetsPath  string `json:"datasets_path"`
		} `json:"csv,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Assistant struct {
		Primary struct {
			BaseURL string `json:"base_url"`
			APIKey  string `json:"api_key"`
			Model   string `json:"model"`
		} `json:"primary,omitempty"`
		Fallback struct {
			BaseURL string `json:"base_url"`
			APIKey  string `json:"api_key"`
			Model   string `json:"model"`
		} `json:"fallback,omitempty"`
		RequestTimeout   Duration `json:"request_timeout"`
		HistoryLimit     int      `json:"history_limit"`
		SnapshotMaxBytes int      `json:"snapshot_max_bytes"`
		SessionAskLimit  int      `json:"session_ask_limit"`
	} `json:"assistant,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			BcryptCost:             jsonCfg.Auth.BcryptCost,
			TokenSignKey:           jsonCfg.Auth.TokenSignKey,
			TokenIssuer:            jsonCfg.Auth.TokenIssuer,
			TokenDuration:          time.Duration(jsonCfg.Auth.TokenDuration),
			BootstrapAdminUsername: jsonCfg.Auth.BootstrapAdminUsername,
			BootstrapAdminPassword: jsonCfg.Auth.BootstrapAdminPassword,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			CSV: CSV{
				IncidentsPath: jsonCfg.Storage.CSV.IncidentsPath,
				TicketsPath:   jsonCfg.Storage.CSV.TicketsPath,
				DatasetsPath:  jsonCfg.Storage.CSV.DatasetsPath,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Assistant: Assistant{
			Primary: Provider{
				BaseURL: jsonCfg.Assistant.Primary.BaseURL,
				APIKey:  jsonCfg.Assistant.Primary.APIKey,
				Model:   jsonCfg.Assistant.Primary.Model,
			},
			Fallback: Provider{
				BaseURL: jsonCfg.Assistant.Fallback.BaseURL,
				APIKey:  jsonCfg.Assistant.Fallback.APIKey,
				Model:   jsonCfg.Assistant.Fallback.Model,
			},
			RequestTimeout:   time.Duration(jsonCfg.Assistant.RequestTimeout),
			HistoryLimit:     jsonCfg.Assistant.HistoryLimit,
			SnapshotMaxBytes: jsonCfg.Assistant.SnapshotMaxBytes,
			SessionAskLimit:  jsonCfg.Assistant.SessionAskLimit,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
