package models

import (
	"time"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

type Company struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Tier                types.Tier `db:"tier" json:"tier"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	CertificateIssuedAt *time.Time `db:"certificate_issued_at" json:"certificate_issued_at"`
}
