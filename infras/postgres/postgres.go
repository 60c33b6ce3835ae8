package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"meetspace/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds the read and write pools. Both point at the same pool when no
// read replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	write := connect("write", DSN(pg.Write, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime)
	if write == nil {
		log.Fatal().Int("maxRetry", pg.MaxRetry).Msg("Could not connect to the write database")
	}

	if pg.Read.Host == "" {
		log.Info().Msg("No read replica configured, reads use the write pool")

		return &Connection{Read: write, Write: write}
	}

	read := connect("read", DSN(pg.Read, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime)
	if read == nil {
		log.Fatal().Int("maxRetry", pg.MaxRetry).Msg("Could not connect to the read database")
	}

	return &Connection{Read: read, Write: write}
}

func (c *Connection) Close() {
	if err := c.Write.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close write pool")
	}

	if c.Read == c.Write {
		return
	}

	if err := c.Read.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close read pool")
	}
}

// DSN renders target as a postgres:// URL. Credentials are escaped and extra query
// values are appended after sslmode.
func DSN(target config.PostgresTarget, prefix string, extra url.Values) string {
	query := url.Values{}
	if target.SSLMode != "" {
		query.Set("sslmode", target.SSLMode)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(target.Username, target.Password),
		Host:     net.JoinHostPort(target.Host, target.Port),
		Path:     prefix + target.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().Str("name", name).Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
