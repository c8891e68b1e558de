// Package config loads the connection settings for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/simplesql/runtime/client"
)

// AppFs is the filesystem config and .env files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".simplesql"
	envPrefix  = "SIMPLESQL"
)

// Options select where configuration is read from.
type Options struct {
	// File is an explicit config file; when empty the search paths are used.
	File string
	// Overrides are applied last, e.g. from command-line flags.
	Overrides map[string]string
}

// Load reads configuration from the config file, .env files and
// SIMPLESQL_* environment variables, in increasing priority.
func Load(opts Options) (client.Config, string, error) {
	if err := loadDotEnv(".env", false); err != nil {
		return client.Config{}, "", err
	}
	if err := loadDotEnv(".env.local", true); err != nil {
		return client.Config{}, "", err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return client.Config{}, "", err
		}
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "simplesql"))
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("driver", "mysql")
	v.SetDefault("debug", "none")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return client.Config{}, "", fmt.Errorf("failed to read config: %w", err)
		}
	}

	for k, val := range opts.Overrides {
		if val != "" {
			v.Set(k, val)
		}
	}

	cfg := client.Config{
		Driver:        v.GetString("driver"),
		Host:          v.GetString("host"),
		Port:          v.GetInt("port"),
		Username:      v.GetString("username"),
		Password:      v.GetString("password"),
		EmptyPassword: v.IsSet("password") && v.GetString("password") == "",
		Schema:        v.GetString("schema"),
		Debug:         v.GetString("debug"),
		Params:        v.GetStringMapString("params"),
	}

	if tz := v.GetString("timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return client.Config{}, "", fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	return cfg, v.ConfigFileUsed(), nil
}

// loadDotEnv sets variables from a .env file on AppFs. Existing environment
// variables win unless override is set.
func loadDotEnv(name string, override bool) error {
	if _, err := AppFs.Stat(name); err != nil {
		return nil
	}

	f, err := AppFs.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for k, val := range vars {
		if _, exists := os.LookupEnv(k); exists && !override {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// Save writes cfg as the user config file and returns its path.
func Save(cfg client.Config) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "simplesql")
	if err := AppFs.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.Set("driver", cfg.Driver)
	v.Set("host", cfg.Host)
	if cfg.Port != 0 {
		v.Set("port", cfg.Port)
	}
	v.Set("username", cfg.Username)
	v.Set("password", cfg.Password)
	v.Set("schema", cfg.Schema)
	v.Set("debug", cfg.Debug)
	if cfg.Location != nil {
		v.Set("timezone", cfg.Location.String())
	}

	path := filepath.Join(dir, configName+".yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}
