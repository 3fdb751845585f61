package dbmanager

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"
)

type PartnerDb interface {
	// Conn returns a new connection to the database.
	// Returns a PartnerConn and an error, if any.
	Conn(ctx context.Context) (PartnerConn, error)
	// Stats returns the number of connection requests and returns.
	Stats() (requests, returns uint64)
}

type PartnerConn interface {
	// Conn returns the underlying connection of the PartnerConn.
	Conn() *sql.Conn
	// Close returns the connection back to the pool.
	Close(ctx context.Context)
}

func NewPartnerDb(ctx context.Context, dbtype string) PartnerDb {
	switch dbtype {
	case "postgresql":
		db, err := NewPostgresqlDb()
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to create PostgreSQL DB")
			return nil
		}
		return db
	}
	return nil
}
