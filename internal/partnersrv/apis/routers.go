package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/certificate"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
)

// Handler carries the server-wide state the API routes operate on.
type Handler struct {
	reconciler   *partners.Reconciler
	certificates *certificate.Service
}

func NewHandler(reconciler *partners.Reconciler, certificates *certificate.Service) *Handler {
	return &Handler{
		reconciler:   reconciler,
		certificates: certificates,
	}
}

func (h *Handler) routes() []httpx.ResponseHandlerParam {
	return []httpx.ResponseHandlerParam{
		{
			Method:  http.MethodGet,
			Path:    "/partners",
			Handler: h.listPartners,
		},
		{
			Method:  http.MethodPost,
			Path:    "/partners/companies",
			Handler: h.createCompany,
		},
		{
			Method:  http.MethodPut,
			Path:    "/partners/companies/{companyID}",
			Handler: h.updateCompany,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/partners/companies/{companyID}",
			Handler: h.deleteCompany,
		},
		{
			Method:  http.MethodPost,
			Path:    "/partners/companies/{companyID}/toggle",
			Handler: h.toggleCompany,
		},
		{
			Method:  http.MethodPost,
			Path:    "/partners/companies/{companyID}/people",
			Handler: h.createPerson,
		},
		{
			Method:  http.MethodPut,
			Path:    "/partners/people/{personID}",
			Handler: h.updatePerson,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/partners/people/{personID}",
			Handler: h.deletePerson,
		},
		{
			Method:  http.MethodPost,
			Path:    "/certificates/requests",
			Handler: h.requestCertificate,
		},
		{
			Method:  http.MethodPost,
			Path:    "/certificates/issue",
			Handler: h.issueCertificate,
		},
		{
			Method:  http.MethodGet,
			Path:    "/tiers",
			Handler: h.getTiers,
		},
	}
}

func Router(r chi.Router, h *Handler) {
	for _, handler := range h.routes() {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}

// urlUUID parses the named chi URL parameter as a UUID.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, httpx.ErrInvalidRequest("invalid " + name)
	}
	return id, nil
}
