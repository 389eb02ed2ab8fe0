package config

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigName     = "config"
	ConfigType     = "yaml"
	ConfigFileName = ConfigName + "." + ConfigType
)

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return os.ExpandEnv(p)
}

// Creates necessary directory and file if they do not exist
// Returns false if the file exists and true if the file does not exist
// If an error occurs, it returns false and the error
func createIfNotExists(directory string, fileName string, contents []byte) (bool, error) {
	err := os.MkdirAll(directory, 0o755)
	if err != nil {
		return false, err
	}

	filePath := path.Join(directory, fileName)
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		f, err := os.Create(filePath)
		if err != nil {
			return false, err
		}
		defer f.Close()

		_, err = f.Write(contents)
		if err != nil {
			return false, err
		}

		return true, nil
	}

	return false, nil
}

func createFiles(directory string) error {
	config, err := DefaultConfig().Export()
	if err != nil {
		return err
	}
	created, err := createIfNotExists(directory, ConfigFileName, config)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("path", path.Join(directory, ConfigFileName)).Msg("Created default config file")
	}

	return nil
}

// ReadConfigFile reads the yaml config file in directory without environment overrides.
func ReadConfigFile(directory string) (*Config, error) {
	data, err := os.ReadFile(path.Join(directory, ConfigFileName))
	if err != nil {
		return nil, err
	}
	return ReadConfig(data)
}

// Load reads the config file, creating a default one on first run, and
// applies the environment on top. The result is not validated.
func Load(home string, lookup LookupFunc) (*Config, error) {
	directory := expandPath(home)

	err := os.MkdirAll(directory, os.ModePerm)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(directory)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		if err := createFiles(directory); err != nil {
			return nil, err
		}
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	if err := ApplyEnv(config, lookup); err != nil {
		return nil, err
	}
	config.LogFile = expandPath(config.LogFile)

	log.Debug().
		Str("config", v.ConfigFileUsed()).
		Int("accounts", len(config.Accounts)).
		Msg("Configuration loaded")

	return config, nil
}

// Init loads .env files from the working directory, then the config in home,
// and validates the result.
func Init(home string) (*Config, error) {
	if err := LoadDotEnv("."); err != nil {
		return nil, errors.Join(errors.New("could not read .env"), err)
	}

	config, err := Load(home, os.LookupEnv)
	if err != nil {
		return nil, err
	}

	// setup logger to use log file
	if config.LogFile != "" {
		_, err := createIfNotExists(filepath.Dir(config.LogFile), filepath.Base(config.LogFile), []byte{})
		if err != nil {
			return nil, errors.Join(errors.New("could not create log file"), err)
		}
	}

	return config, config.Validate()
}
