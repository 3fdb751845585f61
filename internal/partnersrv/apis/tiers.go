package apis

import (
	"net/http"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/tiers"
)

func (h *Handler) getTiers(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   tiers.Comparison(),
	}, nil
}
