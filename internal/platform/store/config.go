package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	// AppName is reported to ClickHouse as the client role
	AppName string

	PG   PGConfig
	CH   CHConfig
	Lite LiteConfig
}

// PGConfig is the Postgres pool; LogSQL installs the query tracer
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig is the ClickHouse native connection
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// LiteConfig is the embedded SQLite file
type LiteConfig struct {
	Enabled     bool
	Path        string
	BusyTimeout time.Duration
}
