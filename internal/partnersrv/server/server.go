package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/httpx"
	commonmiddleware "github.com/productfruits/partnerhub-internal/internal/common/middleware"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/apis"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/certificate"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/config"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/partners"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/server/middleware"
)

// PartnerServer wires the router, the reconciler and the certificate service.
type PartnerServer struct {
	Router       *chi.Mux
	Reconciler   *partners.Reconciler
	Certificates *certificate.Service
	Bridge       *certificate.Bridge
	registry     *prometheus.Registry
}

func CreateNewServer() (*PartnerServer, error) {
	registry := prometheus.NewRegistry()
	reconciler := partners.NewReconciler(partners.NewRepository())
	bridge := certificate.NewBridge(registry, log.Logger)
	s := &PartnerServer{
		Router:       chi.NewRouter(),
		Reconciler:   reconciler,
		Bridge:       bridge,
		Certificates: certificate.NewService(reconciler, bridge),
		registry:     registry,
	}
	return s, nil
}

func (s *PartnerServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		}))
	}
	s.Router.Route("/", s.mountResourceHandlers)
}

func (s *PartnerServer) mountResourceHandlers(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadDB)
		apis.Router(r, apis.NewHandler(s.Reconciler, s.Certificates))
	})
	r.Get("/version", s.getVersion)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *PartnerServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "PartnerHub Server: 0.1.0",
		ApiVersion:    "v1alpha1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
