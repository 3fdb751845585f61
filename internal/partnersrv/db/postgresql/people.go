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

// CreatePerson inserts a new person under an existing company and fills in the
// store-assigned id and creation timestamp.
// Returns an error if the company id does not reference an existing company.
func (em *entityManager) CreatePerson(ctx context.Context, person *models.Person) apperrors.Error {
	personID := person.ID
	if personID == uuid.Nil {
		personID = uuid.New()
	}

	query := `
		INSERT INTO people (id, company_id, name, role, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`

	row := em.conn().QueryRowContext(ctx, query, personID, person.CompanyID, person.Name, person.Role, person.Email)
	err := row.Scan(&person.ID, &person.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23503" || pgErr.ConstraintName == "people_company_id_fkey" {
				log.Ctx(ctx).Info().Str("company_id", person.CompanyID.String()).Msg("company not found")
				return dberror.ErrInvalidCompany
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("name", person.Name).Msg("failed to insert person")
		return dberror.ErrDatabase.Err(err)
	}
	person.CertificateIssuedAt = nil

	return nil
}

// GetPerson retrieves a person by its id.
func (em *entityManager) GetPerson(ctx context.Context, personID uuid.UUID) (*models.Person, apperrors.Error) {
	query := `
		SELECT id, company_id, name, role, email, created_at, certificate_issued_at
		FROM people
		WHERE id = $1;
	`

	person := &models.Person{}
	row := em.conn().QueryRowContext(ctx, query, personID)
	err := row.Scan(&person.ID, &person.CompanyID, &person.Name, &person.Role, &person.Email, &person.CreatedAt, &person.CertificateIssuedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("person not found")
			return nil, dberror.ErrNotFound.Msg("person not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve person")
		return nil, dberror.ErrDatabase.Err(err)
	}

	return person, nil
}

// GetPersonIDByName retrieves the id of the person with the given display name.
// Returns ErrNotFound when no person matches.
func (em *entityManager) GetPersonIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	query := `
		SELECT id
		FROM people
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`

	var personID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, name).Scan(&personID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("name", name).Msg("person not found")
			return uuid.Nil, dberror.ErrNotFound.Msg("person not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve person ID")
		return uuid.Nil, dberror.ErrDatabase.Err(err)
	}

	return personID, nil
}

// ListPeople retrieves all people ordered by creation time descending.
func (em *entityManager) ListPeople(ctx context.Context) ([]*models.Person, apperrors.Error) {
	query := `
		SELECT id, company_id, name, role, email, created_at, certificate_issued_at
		FROM people
		ORDER BY created_at DESC;
	`

	rows, err := em.conn().QueryContext(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list people")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	people := []*models.Person{}
	for rows.Next() {
		person := &models.Person{}
		err := rows.Scan(&person.ID, &person.CompanyID, &person.Name, &person.Role, &person.Email, &person.CreatedAt, &person.CertificateIssuedAt)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan person")
			return nil, dberror.ErrDatabase.Err(err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to iterate people")
		return nil, dberror.ErrDatabase.Err(err)
	}

	return people, nil
}

// UpdatePerson replaces the editable fields (name, role and email) of the
// person with the given id. The owning company cannot be changed.
func (em *entityManager) UpdatePerson(ctx context.Context, personID uuid.UUID, name string, role string, email string) apperrors.Error {
	query := `
		UPDATE people
		SET name = $1, role = $2, email = $3
		WHERE id = $4
		RETURNING id;
	`

	var returnedID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, name, role, email, personID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("person not found")
			return dberror.ErrNotFound.Msg("person not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update person")
		return dberror.ErrDatabase.Err(err)
	}

	return nil
}

// SetPersonCertificateIssuedAt stamps the certificate issuance timestamp on
// the person with the given id.
func (em *entityManager) SetPersonCertificateIssuedAt(ctx context.Context, personID uuid.UUID, issuedAt time.Time) apperrors.Error {
	query := `
		UPDATE people
		SET certificate_issued_at = $1
		WHERE id = $2
		RETURNING id;
	`

	var returnedID uuid.UUID
	err := em.conn().QueryRowContext(ctx, query, issuedAt, personID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Msg("person not found")
			return dberror.ErrNotFound.Msg("person not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to stamp person certificate")
		return dberror.ErrDatabase.Err(err)
	}

	return nil
}

// DeletePerson deletes the person with the given id.
func (em *entityManager) DeletePerson(ctx context.Context, personID uuid.UUID) apperrors.Error {
	query := `
		DELETE FROM people
		WHERE id = $1;
	`

	result, err := em.conn().ExecContext(ctx, query, personID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete person")
		return dberror.ErrDatabase.Err(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve result information")
		return dberror.ErrDatabase.Err(err)
	}

	if rowsAffected == 0 {
		log.Ctx(ctx).Info().Str("person_id", personID.String()).Msg("person not found")
	}

	return nil
}
