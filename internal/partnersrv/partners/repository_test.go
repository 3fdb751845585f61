package partners

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dbtest"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

func TestRepositoryCreateCompany(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	company, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.Nil(t, err)
	assert.NotEqual(t, uuid.Nil, company.ID)
	assert.False(t, company.CreatedAt.IsZero())
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, types.TierCore, company.Tier)
	assert.Nil(t, company.CertificateIssuedAt)
}

func TestRepositoryCreateCompanyValidation(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateCompanyRequest
	}{
		{"empty name", CreateCompanyRequest{Name: "", Tier: types.TierCore}},
		{"blank name", CreateCompanyRequest{Name: "   ", Tier: types.TierCore}},
		{"missing tier", CreateCompanyRequest{Name: "Acme"}},
		{"bad tier", CreateCompanyRequest{Name: "Acme", Tier: "gold"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.CreateCompany(ctx, tt.req)
			require.NotNil(t, err)
			assert.True(t, err.Is(ErrValidation))
		})
	}
	// nothing reached the store
	companies, lerr := store.ListCompanies(ctx)
	require.Nil(t, lerr)
	assert.Empty(t, companies)
}

func TestRepositoryCreatePersonValidation(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	company, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierPremium})
	require.Nil(t, err)

	_, err = repo.CreatePerson(ctx, company.ID, CreatePersonRequest{Name: "Jane Doe", Email: "not-an-email", Role: "CTO"})
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrValidation))

	person, err := repo.CreatePerson(ctx, company.ID, CreatePersonRequest{Name: "Jane Doe", Email: "jane@acme.example", Role: "CTO"})
	require.Nil(t, err)
	assert.Equal(t, company.ID, person.CompanyID)
}

func TestRepositoryLoadTreeNesting(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	acme, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.Nil(t, err)
	globex, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Globex", Tier: types.TierPlatinum})
	require.Nil(t, err)
	jane, err := repo.CreatePerson(ctx, acme.ID, CreatePersonRequest{Name: "Jane Doe", Email: "jane@acme.example", Role: "CTO"})
	require.Nil(t, err)

	tree, err := repo.LoadTree(ctx)
	require.Nil(t, err)
	require.Len(t, tree, 2)
	// newest first
	assert.Equal(t, globex.ID, tree[0].ID)
	assert.Equal(t, acme.ID, tree[1].ID)
	assert.Empty(t, tree[0].People)
	require.Len(t, tree[1].People, 1)
	assert.Equal(t, jane.ID, tree[1].People[0].ID)
}

func TestRepositoryLoadTreeFailsAsPair(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	_, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.Nil(t, err)

	store.FailNext = true
	tree, err := repo.LoadTree(ctx)
	require.NotNil(t, err)
	assert.Nil(t, tree)
}

func TestRepositoryUpdateNotFound(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	err := repo.UpdateCompany(ctx, uuid.New(), UpdateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrCompanyNotFound))

	err = repo.UpdatePerson(ctx, uuid.New(), UpdatePersonRequest{Name: "Jane", Email: "jane@acme.example", Role: "CTO"})
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrPersonNotFound))
}

func TestRepositoryStampCertificate(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	company, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierPremium})
	require.Nil(t, err)
	person, err := repo.CreatePerson(ctx, company.ID, CreatePersonRequest{Name: "Jane Doe", Email: "jane@acme.example", Role: "CTO"})
	require.Nil(t, err)

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.Nil(t, repo.StampCertificate(ctx, types.CertificateCompany, company.ID, issued))
	require.Nil(t, repo.StampCertificate(ctx, types.CertificatePersonal, person.ID, issued))

	tree, lerr := repo.LoadTree(ctx)
	require.Nil(t, lerr)
	require.Len(t, tree, 1)
	require.NotNil(t, tree[0].CertificateIssuedAt)
	assert.Equal(t, issued, *tree[0].CertificateIssuedAt)
	require.Len(t, tree[0].People, 1)
	require.NotNil(t, tree[0].People[0].CertificateIssuedAt)
	assert.Equal(t, issued, *tree[0].People[0].CertificateIssuedAt)

	// re-stamping with the same timestamp changes nothing
	require.Nil(t, repo.StampCertificate(ctx, types.CertificateCompany, company.ID, issued))
	again, lerr := repo.LoadTree(ctx)
	require.Nil(t, lerr)
	assert.Equal(t, issued, *again[0].CertificateIssuedAt)
}

func TestRepositoryStampCertificateMisses(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	err := repo.StampCertificate(ctx, types.CertificateCompany, uuid.New(), time.Now())
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrCompanyNotFound))

	err = repo.StampCertificate(ctx, types.CertificatePersonal, uuid.New(), time.Now())
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrPersonNotFound))

	err = repo.StampCertificate(ctx, "badge", uuid.New(), time.Now())
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrValidation))
}

func TestRepositoryResolveByName(t *testing.T) {
	store := dbtest.NewStore()
	repo := NewRepositoryWithStore(store.Accessor())
	ctx := context.Background()

	company, err := repo.CreateCompany(ctx, CreateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.Nil(t, err)
	person, err := repo.CreatePerson(ctx, company.ID, CreatePersonRequest{Name: "Jane Doe", Email: "jane@acme.example", Role: "CTO"})
	require.Nil(t, err)

	id, err := repo.ResolveCompanyID(ctx, "Acme")
	require.Nil(t, err)
	assert.Equal(t, company.ID, id)

	id, err = repo.ResolvePersonID(ctx, "Jane Doe")
	require.Nil(t, err)
	assert.Equal(t, person.ID, id)

	_, err = repo.ResolveCompanyID(ctx, "Initech")
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrCompanyNotFound))

	_, err = repo.ResolvePersonID(ctx, "John Doe")
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrPersonNotFound))
}
