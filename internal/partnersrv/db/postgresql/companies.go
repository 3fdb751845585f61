package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dberror"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
)

// CreateCompany inserts a new company and fills in the store-assigned id and
// creation timestamp. The returned values are authoritative; callers must use
// them verbatim.
func (em *entityManager) CreateCompany(ctx context.Context, company *models.Company) apperrors.Error {
	companyID := company.ID
	if companyID == uuid.Nil {
		companyID = uuid.New()
	}

	query := `
		INSERT INTO companies (id, name, tier)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`

	row := em.conn().QueryRowContext(ctx, query, companyID, company.Name, company.Tier.String())
	err := row.Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23514" && pgErr.ConstraintName == "companies_tier_check" {
				log.Ctx(ctx).Error().Str("tier", company.Tier.String()).Msg("invalid partnership tier")
				return dberror.ErrInvalidTier
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("name", company.Name).Msg("failed to insert company")
		return dberror.ErrDatabase.Err(err)
	}
	company.CertificateIssuedAt = nil

	return nil
}

// GetCompany retrieves a company by its id.
func (em *entityManager) GetCompany(ctx context.Context, companyID uuid.UUID) (*models.Company, apperrors.Error) {
	query := `
		SELECT id, name, tier, created_at, certificate_issued_at
		FROM companies
		WHERE id = $1;
	`

	company := &models.Company{}
	row := em.conn().QueryRowContext(ctx, query, companyID)
	err := row.Scan(&company.ID, &company.Name, &company.Tier, &company.CreatedAt, &company.CertificateIssuedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("company not found")
			return nil, dberror.ErrNotFound.Msg("company not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve company")
		return nil, dberror.ErrDatabase.Err(err)
	}

	return company, nil
}

// GetCompanyIDByName retrieves the id of the company with the given name.
// Returns ErrNotFound when no company matches, so callers can surface the
// miss instead of silently doing nothing.
func (em *entityManager) GetCompanyIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	query := `
		SELECT id
		FROM companies
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`

	var companyID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, name).Scan(&companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("name", name).Msg("company not found")
			return uuid.Nil, dberror.ErrNotFound.Msg("company not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve company ID")
		return uuid.Nil, dberror.ErrDatabase.Err(err)
	}

	return companyID, nil
}

// ListCompanies retrieves all companies ordered by creation time descending.
// The ordering is a contract with the reconciler: new records are prepended
// locally on create, which only matches a creation-descending list.
func (em *entityManager) ListCompanies(ctx context.Context) ([]*models.Company, apperrors.Error) {
	query := `
		SELECT id, name, tier, created_at, certificate_issued_at
		FROM companies
		ORDER BY created_at DESC;
	`

	rows, err := em.conn().QueryContext(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list companies")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company := &models.Company{}
		err := rows.Scan(&company.ID, &company.Name, &company.Tier, &company.CreatedAt, &company.CertificateIssuedAt)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan company")
			return nil, dberror.ErrDatabase.Err(err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to iterate companies")
		return nil, dberror.ErrDatabase.Err(err)
	}

	return companies, nil
}

// UpdateCompany replaces the editable fields (name and tier) of the company
// with the given id. All other fields are untouched.
func (em *entityManager) UpdateCompany(ctx context.Context, companyID uuid.UUID, name string, tier string) apperrors.Error {
	query := `
		UPDATE companies
		SET name = $1, tier = $2
		WHERE id = $3
		RETURNING id;
	`

	var returnedID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, name, tier, companyID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("company not found")
			return dberror.ErrNotFound.Msg("company not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23514" && pgErr.ConstraintName == "companies_tier_check" {
				log.Ctx(ctx).Error().Str("tier", tier).Msg("invalid partnership tier")
				return dberror.ErrInvalidTier
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update company")
		return dberror.ErrDatabase.Err(err)
	}

	return nil
}

// SetCompanyCertificateIssuedAt stamps the certificate issuance timestamp on
// the company with the given id. Nothing else on the record changes.
func (em *entityManager) SetCompanyCertificateIssuedAt(ctx context.Context, companyID uuid.UUID, issuedAt time.Time) apperrors.Error {
	query := `
		UPDATE companies
		SET certificate_issued_at = $1
		WHERE id = $2
		RETURNING id;
	`

	var returnedID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, issuedAt, companyID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("company not found")
			return dberror.ErrNotFound.Msg("company not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to stamp company certificate")
		return dberror.ErrDatabase.Err(err)
	}

	return nil
}

// DeleteCompany deletes the company with the given id. The people owned by
// the company are removed by the store's cascade.
func (em *entityManager) DeleteCompany(ctx context.Context, companyID uuid.UUID) apperrors.Error {
	query := `
		DELETE FROM companies
		WHERE id = $1;
	`

	result, err := em.conn().ExecContext(ctx, query, companyID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete company")
		return dberror.ErrDatabase.Err(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve result information")
		return dberror.ErrDatabase.Err(err)
	}

	if rowsAffected == 0 {
		log.Ctx(ctx).Info().Str("company_id", companyID.String()).Msg("company not found")
	}

	return nil
}
