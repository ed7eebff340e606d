/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package common provides configuration management, error classification
// and HTTP endpoint utilities for the BaSyx AASX editor components. It includes
// support for YAML configuration files, .env files, environment variable
// overrides, CORS setup and health endpoints.
// nolint:all
package common

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// Config represents the complete configuration structure for the AASX editor.
// It combines server settings, CORS policy, logging, the remote schema
// validation collaborator and the encoder/repair defaults.
type Config struct {
	Server     ServerConfig    `mapstructure:"server" json:"server"`       // HTTP server configuration
	CorsConfig CorsConfig      `mapstructure:"cors" json:"cors"`           // CORS policy configuration
	Logging    LoggingConfig   `mapstructure:"logging" json:"logging"`     // Log level and encoding
	Validator  ValidatorConfig `mapstructure:"validator" json:"validator"` // Remote schema validation
	Encoder    EncoderConfig   `mapstructure:"encoder" json:"encoder"`     // Markup/record encoder defaults
	Repair     RepairConfig    `mapstructure:"repair" json:"repair"`       // Auto-repair placeholders
	Swagger    SwaggerConfig   `mapstructure:"swagger" json:"swagger"`     // Swagger UI contact block
}

// ServerConfig contains HTTP server configuration parameters.
type ServerConfig struct {
	Host            string `mapstructure:"host" json:"host"`                       // Bind address
	Port            int    `mapstructure:"port" json:"port"`                       // HTTP server port (default: 5080)
	ContextPath     string `mapstructure:"contextPath" json:"contextPath"`         // Base path for all endpoints
	MaxUploadBytes  int64  `mapstructure:"maxUploadBytes" json:"maxUploadBytes"`   // Upper bound for uploaded archives
	MaxArchiveBytes int64  `mapstructure:"maxArchiveBytes" json:"maxArchiveBytes"` // Upper bound for the decompressed parts of an archive
}

// CorsConfig contains Cross-Origin Resource Sharing (CORS) policy settings.
type CorsConfig struct {
	AllowedOrigins   []string `mapstructure:"allowedOrigins" json:"allowedOrigins"`
	AllowedMethods   []string `mapstructure:"allowedMethods" json:"allowedMethods"`
	AllowedHeaders   []string `mapstructure:"allowedHeaders" json:"allowedHeaders"`
	AllowCredentials bool     `mapstructure:"allowCredentials" json:"allowCredentials"`
}

// LoggingConfig selects the log level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// ValidatorConfig contains the settings of the remote schema-validation collaborator.
type ValidatorConfig struct {
	URL                 string        `mapstructure:"url" json:"url"`                                 // Endpoint of the remote validator; empty disables remote checks
	APIKey              string        `mapstructure:"apiKey" json:"apiKey"`                           // Optional bearer token
	Timeout             time.Duration `mapstructure:"timeout" json:"timeout"`                         // Per-call deadline, expiry counts as unavailable
	MarkupSchemas       []string      `mapstructure:"markupSchemas" json:"markupSchemas"`             // Named schema documents for the markup form
	RecordSchemas       []string      `mapstructure:"recordSchemas" json:"recordSchemas"`             // Named schema documents for the record form
	LocalRecordFallback bool          `mapstructure:"localRecordFallback" json:"localRecordFallback"` // Check the record form locally when remote is unavailable
}

// EncoderConfig contains defaults used while projecting the tree into wire forms.
type EncoderConfig struct {
	SpecificAssetIDName  string `mapstructure:"specificAssetIdName" json:"specificAssetIdName"`
	SpecificAssetIDValue string `mapstructure:"specificAssetIdValue" json:"specificAssetIdValue"`
	SubmodelIDPrefix     string `mapstructure:"submodelIdPrefix" json:"submodelIdPrefix"`
}

// RepairConfig contains the placeholders the repair engine writes into empty slots.
type RepairConfig struct {
	PlaceholderText     string `mapstructure:"placeholderText" json:"placeholderText"`
	PlaceholderURI      string `mapstructure:"placeholderURI" json:"placeholderURI"`
	PlaceholderFilePath string `mapstructure:"placeholderFilePath" json:"placeholderFilePath"`
	DefaultLanguage     string `mapstructure:"defaultLanguage" json:"defaultLanguage"`
}

// SwaggerConfig contains the contact information injected into the served OpenAPI document.
type SwaggerConfig struct {
	ContactName  string `mapstructure:"contactName" json:"contactName"`
	ContactEmail string `mapstructure:"contactEmail" json:"contactEmail"`
	ContactURL   string `mapstructure:"contactURL" json:"contactURL"`
}

// LoadConfig loads the configuration from YAML files and environment variables.
//
// The function supports multiple configuration sources with the following precedence:
// 1. Environment variables (highest priority, .env file included)
// 2. Configuration file (if provided)
// 3. Default values (lowest priority)
//
// Environment variables should use underscore notation (e.g., VALIDATOR_URL for validator.url).
//
// Example:
//
//	config, err := LoadConfig("config/editor.yaml")
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogWarning("ignoring unreadable .env file: " + err.Error())
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		logger.LogInfo("Loading config from file: " + configPath)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		logger.LogInfo("No config file provided - loading from environment variables only")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	logger.LogInfo("Configuration loaded successfully")
	return cfg, nil
}

// DefaultConfig returns the configuration produced by the defaults alone.
// Tests and the CLI use it when no file is involved.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := new(Config)
	_ = v.Unmarshal(cfg)
	return cfg
}

// setDefaults configures sensible default values for all configuration options.
//
// Default values include:
//   - Server: Port 5080, no context path, 64 MiB uploads decompressing to at most 256 MiB
//   - CORS: Permissive policy allowing all origins and common methods
//   - Validator: no remote endpoint, 15s timeout, local record fallback enabled
//   - Repair: "N/A" text placeholder, English as default language
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5080)
	v.SetDefault("server.contextPath", "")
	v.SetDefault("server.maxUploadBytes", 64<<20)
	v.SetDefault("server.maxArchiveBytes", 256<<20)

	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"*"})
	v.SetDefault("cors.allowCredentials", true)

	v.SetDefault("logging.level", "info")

	v.SetDefault("validator.url", "")
	v.SetDefault("validator.apiKey", "")
	v.SetDefault("validator.timeout", 15*time.Second)
	v.SetDefault("validator.markupSchemas", []string{"AAS.xsd", "AAS_ABAC.xsd", "IEC61360.xsd"})
	v.SetDefault("validator.recordSchemas", []string{"aas.json"})
	v.SetDefault("validator.localRecordFallback", true)

	v.SetDefault("encoder.specificAssetIdName", "serialNumber")
	v.SetDefault("encoder.specificAssetIdValue", "")
	v.SetDefault("encoder.submodelIdPrefix", "")

	v.SetDefault("repair.placeholderText", "N/A")
	v.SetDefault("repair.placeholderURI", "https://example.com/placeholder")
	v.SetDefault("repair.placeholderFilePath", "/aasx/files/placeholder.txt")
	v.SetDefault("repair.defaultLanguage", "en")
}

// PrintConfiguration logs the current configuration with sensitive data redacted.
//
// The validator API key is replaced with "****" before the configuration is
// rendered as pretty-printed JSON.
func PrintConfiguration(cfg *Config) {
	cfgCopy := *cfg
	if cfg.Validator.APIKey != "" {
		cfgCopy.Validator.APIKey = "****"
	}

	configJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(cfgCopy, "", "  ")
	if err != nil {
		logger.LogError("unable to marshal configuration to JSON", err)
		return
	}

	logger.LogInfo("Loaded configuration:\n" + string(configJSON))
}

// AddCors configures Cross-Origin Resource Sharing (CORS) middleware for the router.
func AddCors(r *chi.Mux, config *Config) {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.CorsConfig.AllowedOrigins,
		AllowedMethods:   config.CorsConfig.AllowedMethods,
		AllowedHeaders:   config.CorsConfig.AllowedHeaders,
		AllowCredentials: config.CorsConfig.AllowCredentials,
	})
	r.Use(c.Handler)
}
