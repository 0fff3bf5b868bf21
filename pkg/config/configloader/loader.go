// Package configloader assembles a service configuration from a YAML file, a .env file
// and the process environment, in that order of increasing priority.
package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
)

type Validator interface {
	Validate() error
}

// Sources names the files the loader reads. Missing files are skipped.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Load reads config.yaml and .env from the working directory plus the environment
// variables prefixed with <SERVICE_NAME>_.
func Load[T Validator](serviceName string) (T, error) {
	return LoadFrom[T](serviceName, Sources{ConfigFile: defaultConfigFile, EnvFile: defaultEnvFile})
}

// LoadFrom is Load with explicit file locations.
func LoadFrom[T Validator](serviceName string, src Sources) (T, error) {
	var cfg T
	k := koanf.New(".")

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}

	// 1. yaml file
	if src.ConfigFile != "" {
		if err := k.Load(file.Provider(src.ConfigFile), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("WARN: error loading YAML config file '%s': %v", src.ConfigFile, err)
			}
		}
	}

	// 2. .env file, only keys carrying the service prefix
	if src.EnvFile != "" {
		if envFileMap, err := godotenv.Read(src.EnvFile); err == nil {
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
					continue
				}
				envMap[envTransformer(key)] = value
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	// 3. system environment, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
