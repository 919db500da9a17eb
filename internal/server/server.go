// Package server assembles the echo application: stores, middleware and
// every registry and FHIR route.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ezkzr/kzr-mock-server/internal/config"
	"github.com/ezkzr/kzr-mock-server/internal/domain/ciselnik"
	"github.com/ezkzr/kzr-mock-server/internal/domain/diagnostics"
	"github.com/ezkzr/kzr-mock-server/internal/domain/discharge"
	"github.com/ezkzr/kzr-mock-server/internal/domain/ems"
	"github.com/ezkzr/kzr-mock-server/internal/domain/imaging"
	"github.com/ezkzr/kzr-mock-server/internal/domain/lab"
	"github.com/ezkzr/kzr-mock-server/internal/domain/notification"
	"github.com/ezkzr/kzr-mock-server/internal/domain/patient"
	"github.com/ezkzr/kzr-mock-server/internal/domain/registry"
	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/domain/samples"
	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
	"github.com/ezkzr/kzr-mock-server/internal/platform/metrics"
	"github.com/ezkzr/kzr-mock-server/internal/platform/middleware"
)

// Stores bundles every persistent collection the server serves.
type Stores struct {
	Rids      *rid.Registry
	Registry  *registry.Store
	Patients  *patient.Store
	Discharge *discharge.Store
	Labs      *lab.Store
	Imagery   *imaging.Store
	Runs      *ems.Store
	Subs      *notification.Store
}

// NewStores loads or seeds every data file under cfg.DataDir.
func NewStores(logger zerolog.Logger, cfg *config.Config) *Stores {
	return &Stores{
		Rids:      rid.NewRegistry(logger, cfg.DataDir, rid.NewGenerator(cfg.RIDMaxAttempts)),
		Registry:  registry.NewStore(logger, cfg.DataDir),
		Patients:  patient.NewStore(logger, cfg.DataDir),
		Discharge: discharge.NewStore(logger, cfg.DataDir),
		Labs:      lab.NewStore(logger, cfg.DataDir),
		Imagery:   imaging.NewStore(logger, cfg.DataDir),
		Runs:      ems.NewStore(logger, cfg.DataDir),
		Subs:      notification.NewStore(logger, cfg.DataDir),
	}
}

// New builds the fully wired echo application.
func New(logger zerolog.Logger, cfg *config.Config, st *Stores) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())

	apiV1 := e.Group("/api/v1")
	fhirGroup := e.Group("/fhir")
	fhirGroup.GET("/metadata", fhir.Capability)

	ciselnik.RegisterRoutes(apiV1)

	krp := apiV1.Group("/krp")
	krpzs := apiV1.Group("/krpzs")
	krzp := apiV1.Group("/krzp")

	rid.NewHandler(st.Rids).RegisterRoutes(krp)
	registry.NewHandler(st.Registry).RegisterRoutes(krpzs, krzp)

	subsHandler := notification.NewHandler(st.Subs)
	subsHandler.RegisterRoutes(krpzs)
	subsHandler.RegisterRoutes(krzp)

	patient.NewHandler(st.Patients, st.Rids).RegisterRoutes(apiV1.Group("/ps"), krp, fhirGroup)
	discharge.NewHandler(st.Discharge, st.Patients).RegisterRoutes(apiV1.Group("/hdr"), fhirGroup)
	lab.NewHandler(st.Labs).RegisterRoutes(apiV1.Group("/lab"))
	imaging.NewHandler(st.Imagery).RegisterRoutes(apiV1.Group("/mi"))
	ems.NewHandler(st.Runs).RegisterRoutes(apiV1.Group("/ems"))
	diagnostics.NewHandler(st.Labs, st.Imagery).RegisterRoutes(fhirGroup)

	samples.NewHandler(st.Registry, st.Patients, st.Discharge, st.Labs, st.Imagery, st.Runs).
		RegisterRoutes(apiV1.Group("/samples"))

	return e
}
