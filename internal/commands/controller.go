// Package commands contains the CLI commands for the application
package commands

import (
	"os"

	"github.com/rs/zerolog"
)

type Flags struct {
	LogLevel   string
	ConfigPath string
}

type Controller struct {
	Flags *Flags
}

// logger creates a component logger writing to stderr
func logger(component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(zerolog.GlobalLevel())
}

func (c *Controller) configPath() string {
	if c.Flags == nil {
		return ""
	}
	return c.Flags.ConfigPath
}
