package apis

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/certificate"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dbtest"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

func newTestRouter(t *testing.T) (*chi.Mux, *partners.Reconciler) {
	t.Helper()
	store := dbtest.NewStore()
	rc := partners.NewReconciler(partners.NewRepositoryWithStore(store.Accessor()))
	require.Nil(t, rc.Load(context.Background()))
	bridge := certificate.NewBridge(nil, zerolog.Nop())
	t.Cleanup(bridge.Stop)

	r := chi.NewRouter()
	Router(r, NewHandler(rc, certificate.NewService(rc, bridge)))
	return r, rc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCompanyLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/partners/companies", map[string]string{
		"name": "Acme",
		"tier": "premium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	companyID := gjson.Get(rec.Body.String(), "id").String()
	require.NotEmpty(t, companyID)
	assert.Equal(t, "/partners/companies/"+companyID, rec.Header().Get("Location"))

	rec = doJSON(t, r, http.MethodPut, "/partners/companies/"+companyID, map[string]string{
		"name": "Acme Corp",
		"tier": "platinum",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/partners", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Corp", gjson.Get(rec.Body.String(), "companies.0.name").String())
	assert.Equal(t, "platinum", gjson.Get(rec.Body.String(), "companies.0.tier").String())

	rec = doJSON(t, r, http.MethodDelete, "/partners/companies/"+companyID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/partners", nil)
	assert.Empty(t, gjson.Get(rec.Body.String(), "companies").Array())
}

func TestCreateCompanyValidationError(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/partners/companies", map[string]string{
		"name": "Acme",
		"tier": "gold",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "result").Int())
	assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "tier")
}

func TestPersonLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/partners/companies", map[string]string{
		"name": "Acme",
		"tier": "core",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	companyID := gjson.Get(rec.Body.String(), "id").String()

	rec = doJSON(t, r, http.MethodPost, "/partners/companies/"+companyID+"/people", map[string]string{
		"name":  "Jane Doe",
		"role":  "CTO",
		"email": "jane@acme.example",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	personID := gjson.Get(rec.Body.String(), "id").String()
	require.NotEmpty(t, personID)

	rec = doJSON(t, r, http.MethodPut, "/partners/people/"+personID, map[string]string{
		"name":  "Jane Q. Doe",
		"role":  "VP Engineering",
		"email": "jane.doe@acme.example",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// people are hidden until the company is expanded
	rec = doJSON(t, r, http.MethodGet, "/partners", nil)
	assert.Empty(t, gjson.Get(rec.Body.String(), "companies.0.people").Array())

	rec = doJSON(t, r, http.MethodPost, "/partners/companies/"+companyID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "expanded").Bool())

	rec = doJSON(t, r, http.MethodGet, "/partners", nil)
	assert.Equal(t, "Jane Q. Doe", gjson.Get(rec.Body.String(), "companies.0.people.0.name").String())

	rec = doJSON(t, r, http.MethodDelete, "/partners/people/"+personID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateMissingCompany(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/partners/companies/"+uuid.New().String(), map[string]string{
		"name": "Acme",
		"tier": "core",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidCompanyID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/partners/companies/not-a-uuid", map[string]string{
		"name": "Acme",
		"tier": "core",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCertificateRequestAndIssue(t *testing.T) {
	r, rc := newTestRouter(t)
	ctx := context.Background()

	acme, err := rc.CreateCompany(ctx, partners.CreateCompanyRequest{Name: "Acme", Tier: types.TierPremium})
	require.Nil(t, err)

	rec := doJSON(t, r, http.MethodPost, "/certificates/requests", map[string]string{
		"type":      "company",
		"entity_id": acme.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", gjson.Get(rec.Body.String(), "company_name").String())

	var form map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	form["representative_name"] = "Pat Smith"

	rec = doJSON(t, r, http.MethodPost, "/certificates/issue", form)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "product-fruits-premium-certificate.png", gjson.Get(body, "png_name").String())
	assert.Equal(t, "product-fruits-premium-certificate.pdf", gjson.Get(body, "pdf_name").String())
	assert.Contains(t, gjson.Get(body, "surface").String(), "Certificate of Partnership")
	assert.Contains(t, gjson.Get(body, "badge").String(), "premium")

	tree := rc.Snapshot()
	require.NotNil(t, tree[0].CertificateIssuedAt)
}

func TestGetTiers(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/tiers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Len(t, gjson.Get(body, "tiers").Array(), 3)
	assert.Equal(t, "$1500", gjson.Get(body, `rows.#(feature=="ARR KPI in total (12 months)").values.premium`).String())
}
