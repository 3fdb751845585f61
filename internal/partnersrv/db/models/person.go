package models

import (
	"time"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
)

type Person struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	CompanyID           uuid.UUID  `db:"company_id" json:"company_id"`
	Name                string     `db:"name" json:"name"`
	Role                string     `db:"role" json:"role"`
	Email               string     `db:"email" json:"email"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	CertificateIssuedAt *time.Time `db:"certificate_issued_at" json:"certificate_issued_at"`
}
