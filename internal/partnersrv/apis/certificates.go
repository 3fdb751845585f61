package apis

import (
	"net/http"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/certificate"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

type certificateRequestReq struct {
	Type     types.CertificateType `json:"type"`
	EntityID uuid.UUID             `json:"entity_id"`
}

// requestCertificate packages a certificate request for an existing entity,
// broadcasts it on the bridge and returns the prefilled form.
func (h *Handler) requestCertificate(r *http.Request) (*httpx.Response, error) {
	var req certificateRequestReq
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	form, err := h.certificates.Request(r.Context(), req.Type, req.EntityID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   form,
	}, nil
}

type issueCertificateRsp struct {
	Form    certificate.Form `json:"form"`
	Surface string           `json:"surface"`
	Badge   string           `json:"badge"`
	PNGName string           `json:"png_name"`
	PDFName string           `json:"pdf_name"`
}

// issueCertificate stamps the issue timestamp and returns the rendered
// certificate surface along with the artifact names exporters should use.
func (h *Handler) issueCertificate(r *http.Request) (*httpx.Response, error) {
	var form certificate.Form
	if err := httpx.GetRequestData(r, &form); err != nil {
		return nil, err
	}
	if err := h.certificates.Issue(r.Context(), form); err != nil {
		return nil, err
	}

	surface, err := certificate.Render(form)
	if err != nil {
		return nil, httpx.ErrApplicationError("unable to render certificate")
	}
	badge, err := certificate.RenderBadge(form.Tier)
	if err != nil {
		return nil, httpx.ErrApplicationError("unable to render badge")
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: issueCertificateRsp{
			Form:    form,
			Surface: string(surface),
			Badge:   string(badge),
			PNGName: certificate.FileName(form.Tier, certificate.FormatPNG),
			PDFName: certificate.FileName(form.Tier, certificate.FormatPDF),
		},
	}, nil
}
