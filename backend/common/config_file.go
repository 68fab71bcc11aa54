package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/study-hub.db\nJWT_SECRET=%s\n"

// LoadConfigFile reads ~/.config/study-hub/config.ini, creating it with
// defaults (and a fresh JWT secret) on first run.
func LoadConfigFile() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "study-hub", "config.ini")
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	if _, err := configFile.WriteString(fmt.Sprintf(defaultConfigTemplate, uuid.New().String())); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func applyConfigMap(configMap map[string]string) error {
	if configValue, ok := configMap["SESSION_SECRET"]; ok && configValue != "" {
		SessionSecret = configValue
	}

	if configValue, ok := configMap["SQLITE_PATH"]; ok && configValue != "" {
		SQLitePath = configValue
	}

	if configValue, ok := configMap["JWT_SECRET"]; ok && configValue != "" {
		JWTSecret = configValue
	}

	if configValue, ok := configMap["JWT_REFRESH_SECRET"]; ok && configValue != "" {
		JWTRefreshSecret = configValue
	} else if configValue, ok := configMap["JWT_SECRET"]; ok && configValue != "" {
		JWTRefreshSecret = configValue
	}

	if configValue, ok := configMap["PORT"]; ok && configValue != "" {
		portInt, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = portInt
	}

	if configValue, ok := configMap["REDIS_CONN_STRING"]; ok && configValue != "" {
		RedisConnStr = configValue
	}

	if configValue, ok := configMap["S3_BUCKET"]; ok && configValue != "" {
		S3Bucket = configValue
		S3Enabled = true
	}
	if configValue, ok := configMap["S3_REGION"]; ok && configValue != "" {
		S3Region = configValue
	}
	if configValue, ok := configMap["S3_ACCESS_KEY"]; ok && configValue != "" {
		S3AccessKey = configValue
	}
	if configValue, ok := configMap["S3_SECRET_KEY"]; ok && configValue != "" {
		S3SecretKey = configValue
	}
	if configValue, ok := configMap["S3_BASE_ENDPOINT"]; ok && configValue != "" {
		S3BaseEndpoint = configValue
	}
	if configValue, ok := configMap["S3_URL_EXPIRY_MINUTES"]; ok && configValue != "" {
		minutes, err := strconv.Atoi(configValue)
		if err != nil {
			return fmt.Errorf("invalid value for S3_URL_EXPIRY_MINUTES: %w", err)
		}
		S3URLExpiry = time.Duration(minutes) * time.Minute
	}

	if configValue, ok := configMap["OPENAI_API_KEY"]; ok && configValue != "" {
		OpenAIAPIKey = configValue
	}
	if configValue, ok := configMap["OPENAI_BASE_URL"]; ok && configValue != "" {
		OpenAIBaseURL = configValue
	}
	if configValue, ok := configMap["OPENAI_MODEL"]; ok && configValue != "" {
		OpenAIModel = configValue
	}

	return nil
}
