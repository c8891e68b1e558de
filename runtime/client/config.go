package client

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/executor"
	"github.com/satishbabariya/simplesql/query/sqlgen"
)

// Config holds the connection settings.
type Config struct {
	// Driver is mysql (default), postgres or sqlite3.
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	// EmptyPassword marks an intentionally blank password as supplied.
	EmptyPassword bool
	// Schema is the database name, or the database file for sqlite3.
	Schema string
	// Debug is none (default), log or storelast.
	Debug string
	// Location is the zone temporal values are written and read in. Default UTC.
	Location *time.Location
	// Params are extra driver options appended to the DSN.
	Params map[string]string
}

// Validate checks the required settings. SQLite only needs the schema.
func (c Config) Validate() error {
	dialect, err := sqlgen.NewDialect(c.Driver)
	if err != nil {
		return &query.ConfigError{Reason: err.Error()}
	}

	var missing []string
	if _, ok := dialect.(sqlgen.SQLite); !ok {
		if strings.TrimSpace(c.Host) == "" {
			missing = append(missing, "host")
		}
		if strings.TrimSpace(c.Username) == "" {
			missing = append(missing, "username")
		}
		if c.Password == "" && !c.EmptyPassword {
			missing = append(missing, "password")
		}
	}
	if strings.TrimSpace(c.Schema) == "" {
		missing = append(missing, "schema")
	}
	if len(missing) > 0 {
		return &query.ConfigError{Missing: missing}
	}

	if _, err := executor.ParseMode(c.Debug); err != nil {
		return &query.ConfigError{Reason: err.Error()}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &query.ConfigError{Reason: "port out of range: " + strconv.Itoa(c.Port)}
	}
	return nil
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Config) address(defaultPort int) string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// DSN renders the data source name for the configured driver.
func (c Config) DSN() (string, error) {
	dialect, err := sqlgen.NewDialect(c.Driver)
	if err != nil {
		return "", &query.ConfigError{Reason: err.Error()}
	}

	switch dialect.(type) {
	case sqlgen.Postgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.Username, c.Password),
			Host:   c.address(5432),
			Path:   "/" + c.Schema,
		}
		q := url.Values{}
		q.Set("sslmode", "disable")
		for k, v := range c.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil

	case sqlgen.SQLite:
		if len(c.Params) == 0 {
			return c.Schema, nil
		}
		q := url.Values{}
		for k, v := range c.Params {
			q.Set(k, v)
		}
		return "file:" + c.Schema + "?" + q.Encode(), nil

	default:
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.address(3306)
		mc.DBName = c.Schema
		mc.Loc = c.location()
		if len(c.Params) > 0 {
			mc.Params = make(map[string]string, len(c.Params))
			for k, v := range c.Params {
				mc.Params[k] = v
			}
		}
		return mc.FormatDSN(), nil
	}
}
