// Package dbtest provides an in-memory EntityManager for tests. It keeps the
// postgres store's contract: newest-first listing, store-assigned ids and
// creation timestamps, delete cascading from company to people, not-found on
// misses.
package dbtest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dberror"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// Store is an in-memory db.EntityManager. Set FailNext to force the next call
// to fail, for exercising error paths.
type Store struct {
	mu        sync.Mutex
	companies []*models.Company
	people    []*models.Person

	FailNext bool
}

var _ db.EntityManager = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// Accessor returns a store accessor usable wherever a context-resolved
// EntityManager is expected.
func (s *Store) Accessor() func(ctx context.Context) db.EntityManager {
	return func(ctx context.Context) db.EntityManager { return s }
}

func (s *Store) fail() apperrors.Error {
	if s.FailNext {
		s.FailNext = false
		return dberror.ErrDatabase.Msg("injected failure")
	}
	return nil
}

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = time.Now()
	cc := *company
	s.companies = append([]*models.Company{&cc}, s.companies...)
	return nil
}

func (s *Store) GetCompany(ctx context.Context, companyID uuid.UUID) (*models.Company, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, c := range s.companies {
		if c.ID == companyID {
			cc := *c
			return &cc, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("company not found")
}

func (s *Store) GetCompanyIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return uuid.Nil, err
	}
	for _, c := range s.companies {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return uuid.Nil, dberror.ErrNotFound.Msg("company not found")
}

func (s *Store) ListCompanies(ctx context.Context) ([]*models.Company, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]*models.Company, len(s.companies))
	for i, c := range s.companies {
		cc := *c
		out[i] = &cc
	}
	return out, nil
}

func (s *Store) UpdateCompany(ctx context.Context, companyID uuid.UUID, name string, tier string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for _, c := range s.companies {
		if c.ID == companyID {
			c.Name = name
			c.Tier = types.Tier(tier)
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("company not found")
}

func (s *Store) SetCompanyCertificateIssuedAt(ctx context.Context, companyID uuid.UUID, issuedAt time.Time) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for _, c := range s.companies {
		if c.ID == companyID {
			ts := issuedAt
			c.CertificateIssuedAt = &ts
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("company not found")
}

func (s *Store) DeleteCompany(ctx context.Context, companyID uuid.UUID) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	s.companies = slices.DeleteFunc(s.companies, func(c *models.Company) bool {
		return c.ID == companyID
	})
	s.people = slices.DeleteFunc(s.people, func(p *models.Person) bool {
		return p.CompanyID == companyID
	})
	return nil
}

func (s *Store) CreatePerson(ctx context.Context, person *models.Person) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	found := false
	for _, c := range s.companies {
		if c.ID == person.CompanyID {
			found = true
			break
		}
	}
	if !found {
		return dberror.ErrInvalidCompany
	}
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	person.CreatedAt = time.Now()
	pc := *person
	s.people = append([]*models.Person{&pc}, s.people...)
	return nil
}

func (s *Store) GetPerson(ctx context.Context, personID uuid.UUID) (*models.Person, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, p := range s.people {
		if p.ID == personID {
			pc := *p
			return &pc, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("person not found")
}

func (s *Store) GetPersonIDByName(ctx context.Context, name string) (uuid.UUID, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return uuid.Nil, err
	}
	for _, p := range s.people {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return uuid.Nil, dberror.ErrNotFound.Msg("person not found")
}

func (s *Store) ListPeople(ctx context.Context) ([]*models.Person, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]*models.Person, len(s.people))
	for i, p := range s.people {
		pc := *p
		out[i] = &pc
	}
	return out, nil
}

func (s *Store) UpdatePerson(ctx context.Context, personID uuid.UUID, name string, role string, email string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for _, p := range s.people {
		if p.ID == personID {
			p.Name = name
			p.Role = role
			p.Email = email
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("person not found")
}

func (s *Store) SetPersonCertificateIssuedAt(ctx context.Context, personID uuid.UUID, issuedAt time.Time) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	for _, p := range s.people {
		if p.ID == personID {
			ts := issuedAt
			p.CertificateIssuedAt = &ts
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("person not found")
}

func (s *Store) DeletePerson(ctx context.Context, personID uuid.UUID) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	s.people = slices.DeleteFunc(s.people, func(p *models.Person) bool {
		return p.ID == personID
	})
	return nil
}
