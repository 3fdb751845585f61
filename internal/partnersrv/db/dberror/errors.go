package dberror

import (
	"net/http"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
)

var (
	ErrDatabase       apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists  apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound       apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput   apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrInvalidTier    apperrors.Error = ErrInvalidInput.New("invalid partnership tier").SetStatusCode(http.StatusBadRequest)
	ErrInvalidCompany apperrors.Error = ErrInvalidInput.New("invalid company").SetStatusCode(http.StatusBadRequest)
)
