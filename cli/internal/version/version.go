// Package version reports build information for the simplesql binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set through -ldflags "-X github.com/satishbabariya/simplesql/cli/internal/version.Version=..."
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// driverModules are the database drivers linked into the binary.
var driverModules = []string{
	"github.com/go-sql-driver/mysql",
	"github.com/lib/pq",
	"github.com/mattn/go-sqlite3",
}

// Info holds version information
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
	// Drivers maps driver module path to its linked version.
	Drivers map[string]string
}

// Get returns version information
func Get() Info {
	info := Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Drivers:   map[string]string{},
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			for _, m := range driverModules {
				if dep.Path == m {
					info.Drivers[m] = dep.Version
				}
			}
		}
	}
	return info
}

// String returns a one-line version string
func (i Info) String() string {
	return fmt.Sprintf("simplesql version %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString returns a detailed version string
func (i Info) FullString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "simplesql version %s\nBuild Date: %s\nGit Commit: %s\nPlatform: %s\nGo Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.Platform, i.GoVersion)
	for _, m := range driverModules {
		if v, ok := i.Drivers[m]; ok {
			fmt.Fprintf(&sb, "\nDriver: %s %s", m, v)
		}
	}
	return sb.String()
}
