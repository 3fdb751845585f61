package partners

import (
	"net/http"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
)

var (
	ErrPartner          apperrors.Error = apperrors.New("partner error").SetStatusCode(http.StatusInternalServerError)
	ErrValidation       apperrors.Error = ErrPartner.New("validation failed").SetStatusCode(http.StatusBadRequest)
	ErrCompanyNotFound  apperrors.Error = ErrPartner.New("company not found").SetStatusCode(http.StatusNotFound)
	ErrPersonNotFound   apperrors.Error = ErrPartner.New("person not found").SetStatusCode(http.StatusNotFound)
	ErrMutationInFlight apperrors.Error = ErrPartner.New("another change to this record is still in flight").SetStatusCode(http.StatusConflict)
)
