package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dbmanager"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/postgresql"
)

// EntityManager is the store boundary for the two partner collections. It is
// deliberately narrow: select-all-ordered, insert-one-returning, update-by-id,
// certificate stamping and delete-by-id, matching what the remote store offers.
type EntityManager interface {
	// Companies
	CreateCompany(ctx context.Context, company *models.Company) apperrors.Error
	GetCompany(ctx context.Context, companyID uuid.UUID) (*models.Company, apperrors.Error)
	GetCompanyIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error)
	ListCompanies(ctx context.Context) ([]*models.Company, apperrors.Error)
	UpdateCompany(ctx context.Context, companyID uuid.UUID, name string, tier string) apperrors.Error
	SetCompanyCertificateIssuedAt(ctx context.Context, companyID uuid.UUID, issuedAt time.Time) apperrors.Error
	DeleteCompany(ctx context.Context, companyID uuid.UUID) apperrors.Error

	// People
	CreatePerson(ctx context.Context, person *models.Person) apperrors.Error
	GetPerson(ctx context.Context, personID uuid.UUID) (*models.Person, apperrors.Error)
	GetPersonIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error)
	ListPeople(ctx context.Context) ([]*models.Person, apperrors.Error)
	UpdatePerson(ctx context.Context, personID uuid.UUID, name string, role string, email string) apperrors.Error
	SetPersonCertificateIssuedAt(ctx context.Context, personID uuid.UUID, issuedAt time.Time) apperrors.Error
	DeletePerson(ctx context.Context, personID uuid.UUID) apperrors.Error
}

type ConnectionManager interface {
	// Close the connection to the database.
	Close(ctx context.Context)
}

type DB_ interface {
	EntityManager
	ConnectionManager
}

var pool dbmanager.PartnerDb

// Init creates the database connection pool. It must be called once at
// startup before any connection is requested.
func Init(ctx context.Context) error {
	pg := dbmanager.NewPartnerDb(ctx, "postgresql")
	if pg == nil {
		return apperrors.New("unable to create db pool")
	}
	pool = pg
	return nil
}

func Conn(ctx context.Context) dbmanager.PartnerConn {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "PartnerHubDb"

func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

type partnerHubDb struct {
	EntityManager
	ConnectionManager
}

func DB(ctx context.Context) DB_ {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.PartnerConn); ok {
		em, cm := postgresql.NewPartnerDb(conn)
		return &partnerHubDb{
			EntityManager:     em,
			ConnectionManager: cm,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
