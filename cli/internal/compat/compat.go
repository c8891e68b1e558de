// Package compat checks database server versions against the oldest release
// each dialect is known to work with.
package compat

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
)

// Minimum server versions per dialect name.
var Minimum = map[string]string{
	"mysql":      "5.7.0",
	"postgresql": "9.6.0",
	"sqlite":     "3.8.3",
}

var leadingVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

// Result is the outcome of a version check
type Result struct {
	Server    *version.Version
	Minimum   *version.Version
	Supported bool
}

// Check parses a server version string such as "8.0.36-0ubuntu0.22.04.1" or
// "16.2 (Debian 16.2-1.pgdg120+2)" and compares it with the dialect minimum.
func Check(dialect, server string) (Result, error) {
	min, ok := Minimum[dialect]
	if !ok {
		return Result{}, fmt.Errorf("no minimum version known for %s", dialect)
	}
	minimum, err := version.NewVersion(min)
	if err != nil {
		return Result{}, fmt.Errorf("invalid minimum version format: %w", err)
	}

	raw := leadingVersion.FindString(server)
	if raw == "" {
		return Result{}, fmt.Errorf("cannot read server version from %q", server)
	}
	current, err := version.NewVersion(raw)
	if err != nil {
		return Result{}, fmt.Errorf("invalid version format: %w", err)
	}

	return Result{
		Server:    current,
		Minimum:   minimum,
		Supported: !current.LessThan(minimum),
	}, nil
}
