package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

type (
	BrainDumpConfig struct {
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Auth     AuthConfig     `yaml:"auth"`
		Realtime RealtimeConfig `yaml:"realtime"`
	}

	ServerConfig struct {
		Host string `yaml:"host"`
		Port uint   `yaml:"port"`
	}

	AuthConfig struct {
		EnableNative       bool   `yaml:"enableNative"`
		EnableOpenId       bool   `yaml:"enableOpenId"`
		OpenIdIssuer       string `yaml:"openIdIssuer"`
		OpenIdClientId     string `yaml:"openIdClientId"`
		OpenIdRedirectUrl  string `yaml:"openIdRedirectUrl"`
		AccessTokenMinutes uint   `yaml:"accessTokenMinutes"`
		AuthTokenHours     uint   `yaml:"authTokenHours"`
	}

	DatabaseConfig struct {
		Host      string `yaml:"host"`
		User      string `yaml:"user"`
		Database  string `yaml:"database"`
		Port      uint   `yaml:"port"`
		SslMode   string `yaml:"sslMode"`
		LocalFile string `yaml:"localFile"`
	}

	RealtimeConfig struct {
		EnableSocketIo     bool   `yaml:"enableSocketIo"`
		RedisAddress       string `yaml:"redisAddress"`
		RedisChannelPrefix string `yaml:"redisChannelPrefix"`
	}
)

//go:embed config.schema.json
var configSchema string

// Load reads the configuration file. A missing file is replaced by the defaults,
// a file that violates the schema is rejected.
func Load(fileName string) (*BrainDumpConfig, error) {
	config := defaultConfig()

	configData, err := os.ReadFile(fileName)
	if err != nil {
		log.Warn("Failed to load configuration file. Using defaults.", "path", fileName)
		data, err := yaml.Marshal(&config)
		if err == nil {
			err = os.WriteFile(fileName, data, 0644)
		}
		if err != nil {
			log.Error("Failed to write default configuration file.", "path", fileName)
		}
		return config, nil
	}

	if err := Validate(configData); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(configData, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return config, nil
}

// Validate checks raw YAML against the embedded configuration schema.
func Validate(configData []byte) error {
	var document any
	if err := yaml.Unmarshal(configData, &document); err != nil {
		return fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if document == nil {
		document = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate configuration file: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, schemaError := range result.Errors() {
			problems[i] = schemaError.String()
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}

func defaultConfig() *BrainDumpConfig {
	return &BrainDumpConfig{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Host:      "127.0.0.1",
			User:      "braindump",
			Database:  "braindump",
			Port:      5432,
			SslMode:   "disable",
			LocalFile: "./braindump.db",
		},
		Auth: AuthConfig{
			EnableNative:       true,
			EnableOpenId:       false,
			OpenIdIssuer:       "",
			OpenIdClientId:     "",
			OpenIdRedirectUrl:  "http://localhost:3000/users/login/success",
			AccessTokenMinutes: 15,
			AuthTokenHours:     720,
		},
		Realtime: RealtimeConfig{
			EnableSocketIo:     true,
			RedisAddress:       "",
			RedisChannelPrefix: "braindump",
		},
	}
}
