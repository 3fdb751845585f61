package apis

import (
	"net/http"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
)

// List the partner tree as presented: companies newest-first, people nested
// under expanded companies.
func (h *Handler) listPartners(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   h.reconciler.VisibleTree(),
	}, nil
}

func (h *Handler) createCompany(r *http.Request) (*httpx.Response, error) {
	var req partners.CreateCompanyRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	company, err := h.reconciler.CreateCompany(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/partners/companies/" + company.ID.String(),
		Response:   company,
	}, nil
}

func (h *Handler) updateCompany(r *http.Request) (*httpx.Response, error) {
	companyID, err := urlUUID(r, "companyID")
	if err != nil {
		return nil, err
	}
	var req partners.UpdateCompanyRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := h.reconciler.UpdateCompany(r.Context(), companyID, req); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
	}, nil
}

func (h *Handler) deleteCompany(r *http.Request) (*httpx.Response, error) {
	companyID, err := urlUUID(r, "companyID")
	if err != nil {
		return nil, err
	}
	if err := h.reconciler.DeleteCompany(r.Context(), companyID); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}

type toggleCompanyRsp struct {
	Expanded bool `json:"expanded"`
}

func (h *Handler) toggleCompany(r *http.Request) (*httpx.Response, error) {
	companyID, err := urlUUID(r, "companyID")
	if err != nil {
		return nil, err
	}
	if _, ok := h.reconciler.FindCompany(companyID); !ok {
		return nil, partners.ErrCompanyNotFound
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toggleCompanyRsp{Expanded: h.reconciler.ToggleExpanded(companyID)},
	}, nil
}

func (h *Handler) createPerson(r *http.Request) (*httpx.Response, error) {
	companyID, err := urlUUID(r, "companyID")
	if err != nil {
		return nil, err
	}
	var req partners.CreatePersonRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	person, err := h.reconciler.CreatePerson(r.Context(), companyID, req)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/partners/people/" + person.ID.String(),
		Response:   person,
	}, nil
}

func (h *Handler) updatePerson(r *http.Request) (*httpx.Response, error) {
	personID, err := urlUUID(r, "personID")
	if err != nil {
		return nil, err
	}
	var req partners.UpdatePersonRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := h.reconciler.UpdatePerson(r.Context(), personID, req); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
	}, nil
}

func (h *Handler) deletePerson(r *http.Request) (*httpx.Response, error) {
	personID, err := urlUUID(r, "personID")
	if err != nil {
		return nil, err
	}
	if err := h.reconciler.DeletePerson(r.Context(), personID); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}
