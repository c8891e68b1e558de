package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/config"
	"github.com/satishbabariya/simplesql/cli/internal/ui"
	"github.com/satishbabariya/simplesql/runtime/client"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a connection config interactively",
	Long:  `Ask for the connection settings and write them to ~/.config/simplesql/.simplesql.yaml.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

type initAnswers struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Schema   string
	Debug    string
	Timezone string
}

func runInit(cmd *cobra.Command, args []string) error {
	ui.PrintBox("simplesql", "Connection setup")

	var answers initAnswers
	if err := survey.AskOne(&survey.Select{
		Message: "Driver:",
		Options: []string{"mysql", "postgres", "sqlite3"},
		Default: "mysql",
	}, &answers.Driver); err != nil {
		return err
	}

	var questions []*survey.Question
	if answers.Driver == "sqlite3" {
		questions = append(questions, &survey.Question{
			Name:     "schema",
			Prompt:   &survey.Input{Message: "Database file:", Default: "simplesql.db"},
			Validate: survey.Required,
		})
	} else {
		defaultPort := "3306"
		if answers.Driver == "postgres" {
			defaultPort = "5432"
		}
		questions = append(questions,
			&survey.Question{
				Name:     "host",
				Prompt:   &survey.Input{Message: "Host:", Default: "localhost"},
				Validate: survey.Required,
			},
			&survey.Question{
				Name:     "port",
				Prompt:   &survey.Input{Message: "Port:", Default: defaultPort},
				Validate: validatePort,
			},
			&survey.Question{
				Name:     "username",
				Prompt:   &survey.Input{Message: "Username:"},
				Validate: survey.Required,
			},
			&survey.Question{
				Name:   "password",
				Prompt: &survey.Password{Message: "Password:"},
			},
			&survey.Question{
				Name:     "schema",
				Prompt:   &survey.Input{Message: "Database:"},
				Validate: survey.Required,
			},
		)
	}
	questions = append(questions,
		&survey.Question{
			Name: "debug",
			Prompt: &survey.Select{
				Message: "Debug mode:",
				Options: []string{"none", "log", "storelast"},
				Default: "none",
			},
		},
		&survey.Question{
			Name:     "timezone",
			Prompt:   &survey.Input{Message: "Timezone for DATETIME columns:", Default: "UTC"},
			Validate: validateTimezone,
		},
	)
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	cfg, err := answers.config()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := config.Save(cfg)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ui.PrintSuccess("wrote %s", path)
	ui.PrintInfo("run `simplesql ping` to check the connection")
	return nil
}

func (a initAnswers) config() (client.Config, error) {
	cfg := client.Config{
		Driver:        a.Driver,
		Host:          a.Host,
		Username:      a.Username,
		Password:      a.Password,
		EmptyPassword: a.Password == "",
		Schema:        a.Schema,
		Debug:         a.Debug,
	}
	if a.Port != "" {
		port, err := strconv.Atoi(a.Port)
		if err != nil {
			return client.Config{}, fmt.Errorf("invalid port %q", a.Port)
		}
		cfg.Port = port
	}
	if a.Timezone != "" {
		loc, err := time.LoadLocation(a.Timezone)
		if err != nil {
			return client.Config{}, err
		}
		cfg.Location = loc
	}
	return cfg, nil
}

func validatePort(ans interface{}) error {
	s, _ := ans.(string)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func validateTimezone(ans interface{}) error {
	s, _ := ans.(string)
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone %q", s)
	}
	return nil
}
