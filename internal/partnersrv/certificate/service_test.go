package certificate

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dbtest"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

func TestPrefillFormPersonalNameSplit(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane van der Berg", "Jane", "van der Berg"},
		{"Prince", "Prince", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := PrefillForm(Request{
				Type: types.CertificatePersonal,
				Name: tt.name,
				Tier: types.TierPremium,
			})
			assert.Equal(t, tt.first, form.FirstName)
			assert.Equal(t, tt.last, form.LastName)
			assert.Empty(t, form.CompanyName)
		})
	}
}

func TestPrefillFormCompany(t *testing.T) {
	form := PrefillForm(Request{
		Type: types.CertificateCompany,
		Name: "Acme Inc.",
		Tier: types.TierPlatinum,
	})
	assert.Equal(t, "Acme Inc.", form.CompanyName)
	assert.Empty(t, form.FirstName)
	assert.Empty(t, form.LastName)
	assert.False(t, form.IssueDate.IsZero())
}

func TestPrefillFormKeepsIssueDate(t *testing.T) {
	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	form := PrefillForm(Request{
		Type:      types.CertificateCompany,
		Name:      "Acme",
		Tier:      types.TierCore,
		IssueDate: issued,
	})
	assert.Equal(t, issued, form.IssueDate)
}

func TestFormValidate(t *testing.T) {
	id := uuid.New()
	valid := Form{
		Type:      types.CertificatePersonal,
		EntityID:  id,
		Tier:      types.TierPremium,
		FirstName: "Jane",
		LastName:  "Doe",
		IssueDate: time.Now(),
	}
	require.Nil(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"bad type", func(f *Form) { f.Type = "badge" }},
		{"bad tier", func(f *Form) { f.Tier = "gold" }},
		{"nil entity id", func(f *Form) { f.EntityID = uuid.Nil }},
		{"blank first name", func(f *Form) { f.FirstName = "   " }},
		{"blank last name", func(f *Form) { f.LastName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.NotNil(t, f.Validate())
		})
	}

	company := Form{
		Type:               types.CertificateCompany,
		EntityID:           id,
		Tier:               types.TierCore,
		CompanyName:        "Acme",
		RepresentativeName: "Pat Smith",
		IssueDate:          time.Now(),
	}
	require.Nil(t, company.Validate())

	company.RepresentativeName = " "
	assert.NotNil(t, company.Validate())
	company.RepresentativeName = "Pat Smith"
	company.CompanyName = ""
	assert.NotNil(t, company.Validate())
}

func newTestService(t *testing.T) (*Service, *partners.Reconciler, *Bridge) {
	t.Helper()
	store := dbtest.NewStore()
	rc := partners.NewReconciler(partners.NewRepositoryWithStore(store.Accessor()))
	require.Nil(t, rc.Load(context.Background()))
	bridge := NewBridge(nil, zerolog.Nop())
	t.Cleanup(bridge.Stop)
	return NewService(rc, bridge), rc, bridge
}

func TestServiceRequestCompany(t *testing.T) {
	svc, rc, bridge := newTestService(t)
	ctx := context.Background()

	acme, err := rc.CreateCompany(ctx, partners.CreateCompanyRequest{Name: "Acme", Tier: types.TierPlatinum})
	require.Nil(t, err)

	_, ch := bridge.Subscribe(EventCertificateRequested)

	form, err := svc.Request(ctx, types.CertificateCompany, acme.ID)
	require.Nil(t, err)
	assert.Equal(t, "Acme", form.CompanyName)
	assert.Equal(t, types.TierPlatinum, form.Tier)
	assert.Equal(t, acme.ID, form.EntityID)

	select {
	case evt := <-ch:
		assert.Equal(t, acme.ID, evt.Request.EntityID)
		assert.Equal(t, types.CertificateCompany, evt.Request.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for request event")
	}
}

func TestServiceRequestPersonUsesCompanyTier(t *testing.T) {
	svc, rc, _ := newTestService(t)
	ctx := context.Background()

	acme, err := rc.CreateCompany(ctx, partners.CreateCompanyRequest{Name: "Acme", Tier: types.TierPremium})
	require.Nil(t, err)
	jane, err := rc.CreatePerson(ctx, acme.ID, partners.CreatePersonRequest{Name: "Jane Doe", Email: "jane@acme.example", Role: "CTO"})
	require.Nil(t, err)

	form, err := svc.Request(ctx, types.CertificatePersonal, jane.ID)
	require.Nil(t, err)
	assert.Equal(t, "Jane", form.FirstName)
	assert.Equal(t, "Doe", form.LastName)
	assert.Equal(t, types.TierPremium, form.Tier)
}

func TestServiceRequestUnknownEntity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Request(ctx, types.CertificateCompany, uuid.New())
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrUnknownEntity))

	_, err = svc.Request(ctx, types.CertificatePersonal, uuid.New())
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrUnknownEntity))
}

func TestServiceIssueStampsAndPublishes(t *testing.T) {
	svc, rc, bridge := newTestService(t)
	ctx := context.Background()

	acme, err := rc.CreateCompany(ctx, partners.CreateCompanyRequest{Name: "Acme", Tier: types.TierCore})
	require.Nil(t, err)

	_, ch := bridge.Subscribe(EventCertificateIssued)

	issued := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	err = svc.Issue(ctx, Form{
		Type:               types.CertificateCompany,
		EntityID:           acme.ID,
		Tier:               types.TierCore,
		CompanyName:        "Acme",
		RepresentativeName: "Pat Smith",
		IssueDate:          issued,
	})
	require.Nil(t, err)

	tree := rc.Snapshot()
	require.NotNil(t, tree[0].CertificateIssuedAt)
	assert.Equal(t, issued, *tree[0].CertificateIssuedAt)

	select {
	case evt := <-ch:
		assert.Equal(t, acme.ID, evt.Request.EntityID)
		assert.Equal(t, issued, evt.Request.IssueDate)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for issued event")
	}
}

func TestServiceIssueInvalidForm(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Issue(context.Background(), Form{
		Type:     types.CertificatePersonal,
		EntityID: uuid.New(),
		Tier:     types.TierCore,
	})
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrInvalidForm))
}
