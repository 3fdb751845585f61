// Package postgresql implements the partner entity store on PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/dbmanager"
)

type entityManager struct {
	c dbmanager.PartnerConn
}

type connectionManager struct {
	c dbmanager.PartnerConn
}

func NewPartnerDb(c dbmanager.PartnerConn) (*entityManager, *connectionManager) {
	return &entityManager{c: c}, &connectionManager{c: c}
}

func (em *entityManager) conn() *sql.Conn {
	return em.c.Conn()
}

func (cm *connectionManager) Close(ctx context.Context) {
	cm.c.Close(ctx)
}
