package partners

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dberror"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// StoreFunc resolves the entity store for a request context. The default
// resolves the pooled database connection carried in the context; tests
// substitute an in-memory store.
type StoreFunc func(ctx context.Context) db.EntityManager

// Repository is the single choke-point for remote reads and writes. Every
// operation returns either a payload or an apperrors.Error carrying a
// human-readable message; raw transport errors never escape it. Failures are
// terminal for the triggering action: the repository never retries.
type Repository struct {
	store StoreFunc
}

func NewRepository() *Repository {
	return &Repository{
		store: func(ctx context.Context) db.EntityManager {
			return db.DB(ctx)
		},
	}
}

// NewRepositoryWithStore creates a repository over an explicit store.
func NewRepositoryWithStore(store StoreFunc) *Repository {
	return &Repository{store: store}
}

// LoadTree fetches both collections and nests people under their companies.
// The two lists load as a pair: if either fails the whole load fails and no
// partial result is returned, so callers can keep whatever tree they had.
func (r *Repository) LoadTree(ctx context.Context) ([]*Company, apperrors.Error) {
	store := r.store(ctx)
	if store == nil {
		return nil, ErrPartner.Msg("store unavailable")
	}

	companies, err := store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	people, err := store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	return buildTree(companies, people), nil
}

// CreateCompany validates the request and inserts the company. The returned
// record carries the store-assigned id and creation timestamp verbatim; it is
// authoritative only after this round-trip returns.
func (r *Repository) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*models.Company, apperrors.Error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	store := r.store(ctx)
	if store == nil {
		return nil, ErrPartner.Msg("store unavailable")
	}

	company := &models.Company{
		Name: req.Name,
		Tier: req.Tier,
	}
	if err := store.CreateCompany(ctx, company); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("company_id", company.ID.String()).Str("name", company.Name).Msg("company created")
	return company, nil
}

// CreatePerson validates the request and inserts the person under the given
// company.
func (r *Repository) CreatePerson(ctx context.Context, companyID uuid.UUID, req CreatePersonRequest) (*models.Person, apperrors.Error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	store := r.store(ctx)
	if store == nil {
		return nil, ErrPartner.Msg("store unavailable")
	}

	person := &models.Person{
		CompanyID: companyID,
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
	}
	if err := store.CreatePerson(ctx, person); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("person_id", person.ID.String()).Str("name", person.Name).Msg("person created")
	return person, nil
}

// UpdateCompany replaces the editable fields of the company with the given id.
func (r *Repository) UpdateCompany(ctx context.Context, companyID uuid.UUID, req UpdateCompanyRequest) apperrors.Error {
	if err := validateRequest(req); err != nil {
		return err
	}
	store := r.store(ctx)
	if store == nil {
		return ErrPartner.Msg("store unavailable")
	}

	if err := store.UpdateCompany(ctx, companyID, req.Name, req.Tier.String()); err != nil {
		if err.Is(dberror.ErrNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	return nil
}

// UpdatePerson replaces the editable fields of the person with the given id.
func (r *Repository) UpdatePerson(ctx context.Context, personID uuid.UUID, req UpdatePersonRequest) apperrors.Error {
	if err := validateRequest(req); err != nil {
		return err
	}
	store := r.store(ctx)
	if store == nil {
		return ErrPartner.Msg("store unavailable")
	}

	if err := store.UpdatePerson(ctx, personID, req.Name, req.Role, req.Email); err != nil {
		if err.Is(dberror.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	return nil
}

// DeleteCompany deletes the company; the store cascades to its people.
func (r *Repository) DeleteCompany(ctx context.Context, companyID uuid.UUID) apperrors.Error {
	store := r.store(ctx)
	if store == nil {
		return ErrPartner.Msg("store unavailable")
	}
	return store.DeleteCompany(ctx, companyID)
}

// DeletePerson deletes the person with the given id.
func (r *Repository) DeletePerson(ctx context.Context, personID uuid.UUID) apperrors.Error {
	store := r.store(ctx)
	if store == nil {
		return ErrPartner.Msg("store unavailable")
	}
	return store.DeletePerson(ctx, personID)
}

// StampCertificate sets certificate_issued_at on the record with the given id.
// Keyed by id rather than display name so renames and duplicate names cannot
// stamp the wrong record. Idempotent for identical timestamps.
func (r *Repository) StampCertificate(ctx context.Context, certType types.CertificateType, id uuid.UUID, issuedAt time.Time) apperrors.Error {
	store := r.store(ctx)
	if store == nil {
		return ErrPartner.Msg("store unavailable")
	}

	var err apperrors.Error
	switch certType {
	case types.CertificateCompany:
		err = store.SetCompanyCertificateIssuedAt(ctx, id, issuedAt)
		if err != nil && err.Is(dberror.ErrNotFound) {
			return ErrCompanyNotFound
		}
	case types.CertificatePersonal:
		err = store.SetPersonCertificateIssuedAt(ctx, id, issuedAt)
		if err != nil && err.Is(dberror.ErrNotFound) {
			return ErrPersonNotFound
		}
	default:
		return ErrValidation.Msg("certificate type must be personal or company")
	}
	return err
}

// ResolveCompanyID looks up a company id by display name, for flows that only
// carry a name forward. A miss is an explicit not-found error, never a silent
// no-op.
func (r *Repository) ResolveCompanyID(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	store := r.store(ctx)
	if store == nil {
		return uuid.Nil, ErrPartner.Msg("store unavailable")
	}
	id, err := store.GetCompanyIDByName(ctx, name)
	if err != nil {
		if err.Is(dberror.ErrNotFound) {
			return uuid.Nil, ErrCompanyNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

// ResolvePersonID looks up a person id by display name.
func (r *Repository) ResolvePersonID(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	store := r.store(ctx)
	if store == nil {
		return uuid.Nil, ErrPartner.Msg("store unavailable")
	}
	id, err := store.GetPersonIDByName(ctx, name)
	if err != nil {
		if err.Is(dberror.ErrNotFound) {
			return uuid.Nil, ErrPersonNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}
