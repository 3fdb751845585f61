package partners

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// Reconciler keeps the server's in-memory view of the partner tree and applies
// every mutation in two steps: round-trip to the repository first, then merge
// the acknowledged result into the local tree. The local tree is only ever
// updated after the store has accepted the change, so it never shows state the
// store has rejected.
//
// Ordering contract: the store lists both collections newest-first, and every
// local create prepends at index 0. The merged tree therefore stays in store
// order without ever re-sorting locally.
type Reconciler struct {
	repo *Repository

	mu        sync.Mutex
	companies []*Company
	expanded  map[uuid.UUID]struct{}
	inflight  map[string]struct{}
	loaded    bool
}

func NewReconciler(repo *Repository) *Reconciler {
	return &Reconciler{
		repo:     repo,
		expanded: make(map[uuid.UUID]struct{}),
		inflight: make(map[string]struct{}),
	}
}

// Load replaces the tree with a fresh pair load from the repository. On
// failure the previous tree is kept untouched, so a transient store outage
// degrades to stale data rather than an empty view.
func (rc *Reconciler) Load(ctx context.Context) apperrors.Error {
	tree, err := rc.repo.LoadTree(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("tree load failed, keeping previous tree")
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.companies = tree
	rc.loaded = true

	// Drop expanded markers for companies that no longer exist.
	alive := make(map[uuid.UUID]struct{}, len(tree))
	for _, c := range tree {
		alive[c.ID] = struct{}{}
	}
	for id := range rc.expanded {
		if _, ok := alive[id]; !ok {
			delete(rc.expanded, id)
		}
	}
	return nil
}

// Loaded reports whether at least one load has succeeded.
func (rc *Reconciler) Loaded() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.loaded
}

// Snapshot returns a deep copy of the current tree. Callers may mutate the
// result freely.
func (rc *Reconciler) Snapshot() []*Company {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.snapshotLocked()
}

func (rc *Reconciler) snapshotLocked() []*Company {
	out := make([]*Company, len(rc.companies))
	for i, c := range rc.companies {
		out[i] = c.clone()
	}
	return out
}

// TreeView pairs a tree snapshot with the set of expanded company ids.
type TreeView struct {
	Companies []*Company  `json:"companies"`
	Expanded  []uuid.UUID `json:"expanded"`
}

// VisibleTree returns the tree as presented: people are nested only under
// expanded companies, collapsed companies show an empty people list. Expansion
// is presentation state, it never changes what is stored.
func (rc *Reconciler) VisibleTree() TreeView {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	expanded := make([]uuid.UUID, 0, len(rc.expanded))
	companies := rc.snapshotLocked()
	for _, c := range companies {
		if _, ok := rc.expanded[c.ID]; ok {
			expanded = append(expanded, c.ID)
		} else {
			c.People = []models.Person{}
		}
	}
	return TreeView{
		Companies: companies,
		Expanded:  expanded,
	}
}

// In-flight tokens. Each mutation claims a token before touching the store and
// releases it after the local merge. A second mutation arriving while the
// token is held is rejected with a conflict instead of queueing, so the local
// merge for one acknowledgement can never interleave with another for the
// same record.
const (
	tokenCompanyCreate = "company:create"
)

func tokenEntity(id uuid.UUID) string { return id.String() }

func tokenPersonCreate(companyID uuid.UUID) string { return "person:create:" + companyID.String() }

func tokenCertificate(id uuid.UUID) string { return "cert:" + id.String() }

func (rc *Reconciler) acquire(tokens ...string) apperrors.Error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, t := range tokens {
		if _, held := rc.inflight[t]; held {
			return ErrMutationInFlight
		}
	}
	for _, t := range tokens {
		rc.inflight[t] = struct{}{}
	}
	return nil
}

func (rc *Reconciler) release(tokens ...string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, t := range tokens {
		delete(rc.inflight, t)
	}
}

// CreateCompany inserts the company remotely and prepends the acknowledged
// record at index 0 of the tree.
func (rc *Reconciler) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*models.Company, apperrors.Error) {
	if err := rc.acquire(tokenCompanyCreate); err != nil {
		return nil, err
	}
	defer rc.release(tokenCompanyCreate)

	company, err := rc.repo.CreateCompany(ctx, req)
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	node := &Company{
		Company: *company,
		People:  []models.Person{},
	}
	rc.companies = append([]*Company{node}, rc.companies...)
	return company, nil
}

// CreatePerson inserts the person remotely and prepends the acknowledged
// record to the owning company's people.
func (rc *Reconciler) CreatePerson(ctx context.Context, companyID uuid.UUID, req CreatePersonRequest) (*models.Person, apperrors.Error) {
	token := tokenPersonCreate(companyID)
	if err := rc.acquire(token); err != nil {
		return nil, err
	}
	defer rc.release(token)

	person, err := rc.repo.CreatePerson(ctx, companyID, req)
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		if c.ID == companyID {
			c.People = append([]models.Person{*person}, c.People...)
			break
		}
	}
	return person, nil
}

// UpdateCompany updates the company remotely, then replaces the matching node
// in place. Only the target node changes; position, people and every other
// node are untouched.
func (rc *Reconciler) UpdateCompany(ctx context.Context, companyID uuid.UUID, req UpdateCompanyRequest) apperrors.Error {
	token := tokenEntity(companyID)
	if err := rc.acquire(token); err != nil {
		return err
	}
	defer rc.release(token)

	if err := rc.repo.UpdateCompany(ctx, companyID, req); err != nil {
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		if c.ID == companyID {
			c.Name = req.Name
			c.Tier = req.Tier
			break
		}
	}
	return nil
}

// UpdatePerson updates the person remotely, then replaces the matching record
// in place within its company.
func (rc *Reconciler) UpdatePerson(ctx context.Context, personID uuid.UUID, req UpdatePersonRequest) apperrors.Error {
	token := tokenEntity(personID)
	if err := rc.acquire(token); err != nil {
		return err
	}
	defer rc.release(token)

	if err := rc.repo.UpdatePerson(ctx, personID, req); err != nil {
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		for i := range c.People {
			if c.People[i].ID == personID {
				c.People[i].Name = req.Name
				c.People[i].Role = req.Role
				c.People[i].Email = req.Email
				return nil
			}
		}
	}
	return nil
}

// DeleteCompany deletes the company remotely, then removes its node from the
// tree. The node's people go with it, mirroring the store's cascade, and its
// expanded marker is dropped so a later company cannot inherit it.
func (rc *Reconciler) DeleteCompany(ctx context.Context, companyID uuid.UUID) apperrors.Error {
	token := tokenEntity(companyID)
	if err := rc.acquire(token); err != nil {
		return err
	}
	defer rc.release(token)

	if err := rc.repo.DeleteCompany(ctx, companyID); err != nil {
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	kept := rc.companies[:0]
	for _, c := range rc.companies {
		if c.ID != companyID {
			kept = append(kept, c)
		}
	}
	rc.companies = kept
	delete(rc.expanded, companyID)
	return nil
}

// DeletePerson deletes the person remotely, then removes the record from its
// company.
func (rc *Reconciler) DeletePerson(ctx context.Context, personID uuid.UUID) apperrors.Error {
	token := tokenEntity(personID)
	if err := rc.acquire(token); err != nil {
		return err
	}
	defer rc.release(token)

	if err := rc.repo.DeletePerson(ctx, personID); err != nil {
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		for i := range c.People {
			if c.People[i].ID == personID {
				c.People = append(c.People[:i], c.People[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// StampCertificate records the issue timestamp remotely, then merges it into
// the one matching record. No other field of the record changes and no other
// record is touched. Stamping an already-stamped record overwrites the
// timestamp; with an identical timestamp the operation is a no-op.
func (rc *Reconciler) StampCertificate(ctx context.Context, certType types.CertificateType, id uuid.UUID, issuedAt time.Time) apperrors.Error {
	token := tokenCertificate(id)
	if err := rc.acquire(token); err != nil {
		return err
	}
	defer rc.release(token)

	if err := rc.repo.StampCertificate(ctx, certType, id, issuedAt); err != nil {
		return err
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	switch certType {
	case types.CertificateCompany:
		for _, c := range rc.companies {
			if c.ID == id {
				ts := issuedAt
				c.CertificateIssuedAt = &ts
				break
			}
		}
	case types.CertificatePersonal:
		for _, c := range rc.companies {
			for i := range c.People {
				if c.People[i].ID == id {
					ts := issuedAt
					c.People[i].CertificateIssuedAt = &ts
					return nil
				}
			}
		}
	}
	return nil
}

// ToggleExpanded flips whether a company's people are shown. Pure presentation
// state; no store round-trip.
func (rc *Reconciler) ToggleExpanded(companyID uuid.UUID) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.expanded[companyID]; ok {
		delete(rc.expanded, companyID)
		return false
	}
	rc.expanded[companyID] = struct{}{}
	return true
}

func (rc *Reconciler) IsExpanded(companyID uuid.UUID) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	_, ok := rc.expanded[companyID]
	return ok
}

// FindCompany returns a copy of the company node with the given id.
func (rc *Reconciler) FindCompany(companyID uuid.UUID) (*Company, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		if c.ID == companyID {
			return c.clone(), true
		}
	}
	return nil, false
}

// FindPerson returns a copy of the person with the given id and its owning
// company.
func (rc *Reconciler) FindPerson(personID uuid.UUID) (*models.Person, *Company, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, c := range rc.companies {
		for i := range c.People {
			if c.People[i].ID == personID {
				p := c.People[i]
				if p.CertificateIssuedAt != nil {
					ts := *p.CertificateIssuedAt
					p.CertificateIssuedAt = &ts
				}
				return &p, c.clone(), true
			}
		}
	}
	return nil, nil, false
}
