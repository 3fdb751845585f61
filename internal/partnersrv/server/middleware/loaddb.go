package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db"
)

// LoadDB checks out a pooled database connection for the request and returns
// it when the request completes. When no connection is available the request
// is answered with an application error instead of reaching the handlers.
func LoadDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := db.ConnCtx(r.Context())
		if db.DB(ctx) == nil {
			log.Ctx(r.Context()).Error().Msg("unable to get db connection")
			httpx.ErrApplicationError("unable to service request at this time").Send(w)
			return
		}
		defer func() {
			if conn := db.DB(ctx); conn != nil {
				conn.Close(ctx)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
