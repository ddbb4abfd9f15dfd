package postgres

//nolint:revive
import (
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// Close releases both pools. Read and Write may point at the same server.
func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed to close database connection")
		}
	}
}

// URL builds the connection URL for db, applying DB_POSTGRES_PREFIX to the database name.
// Credentials are escaped.
func URL(cfg *config.Config, db config.Database) *url.URL {
	query := url.Values{}
	query.Set("sslmode", db.SSLMode)

	if db.Timezone != "" {
		query.Set("timezone", db.Timezone)
	}

	return &url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(db.Username, db.Password),
		Host:     net.JoinHostPort(db.Host, db.Port),
		Path:     cfg.DB.Postgres.Prefix + db.Name,
		RawQuery: query.Encode(),
	}
}

// connect retries up to DB_POSTGRES_MAX_RETRY times and exits the process when every attempt fails.
func connect(cfg *config.Config, name string, db config.Database) *sqlx.DB {
	pg := cfg.DB.Postgres
	dsn := URL(cfg, db).String()
	logger := log.With().Str("name", name).Str("host", db.Host).Str("port", db.Port).Str("dbName", pg.Prefix+db.Name).Logger()

	for attempt := range max(pg.MaxRetry, 1) {
		sqlDB, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
			sqlDB.SetMaxOpenConns(pg.MaxOpenConns)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Msg("Could not connect to database")

	return nil
}
