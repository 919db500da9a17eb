// Package diagnostics serves the category-driven FHIR search endpoints,
// projecting lab and imaging reports as Observations and DiagnosticReports.
package diagnostics

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/internal/domain/imaging"
	"github.com/ezkzr/kzr-mock-server/internal/domain/lab"
	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
)

type Handler struct {
	labs    *lab.Store
	imagery *imaging.Store
}

func NewHandler(labs *lab.Store, imagery *imaging.Store) *Handler {
	return &Handler{labs: labs, imagery: imagery}
}

func (h *Handler) RegisterRoutes(fhirGroup *echo.Group) {
	fhirGroup.GET("/Observation", h.Observations)
	fhirGroup.GET("/DiagnosticReport", h.DiagnosticReports)
}

// Observations flattens every lab result of the patient into laboratory
// Observations. A non-laboratory category yields an empty searchset; a
// laboratory query with no underlying reports yields not-found.
func (h *Handler) Observations(c echo.Context) error {
	patient := c.QueryParam("patient")
	if !strings.EqualFold(c.QueryParam("category"), "laboratory") {
		return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(nil))
	}

	var resources []interface{}
	ix := 0
	for _, rep := range h.labs.ReportsByRid(patient) {
		for _, res := range rep.Results {
			ix++
			resources = append(resources, res.ToFHIR(patient, ix))
		}
	}
	if len(resources) == 0 {
		return fhir.NotFound(c, fmt.Sprintf("No LAB observations for patient %s.", patient))
	}
	return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(resources))
}

func (h *Handler) DiagnosticReports(c echo.Context) error {
	patient := c.QueryParam("patient")
	category := c.QueryParam("category")

	switch {
	case strings.EqualFold(category, "laboratory"):
		reports := h.labs.ReportsByRid(patient)
		if len(reports) == 0 {
			return fhir.NotFound(c, fmt.Sprintf("No LAB report for patient %s.", patient))
		}
		resources := make([]interface{}, 0, len(reports))
		for i := range reports {
			resources = append(resources, reports[i].ToFHIR())
		}
		return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(resources))

	case strings.EqualFold(category, "imaging"):
		reports := h.imagery.ReportsByRid(patient)
		if len(reports) == 0 {
			return fhir.NotFound(c, fmt.Sprintf("No Imaging report for patient %s.", patient))
		}
		resources := make([]interface{}, 0, len(reports))
		for i := range reports {
			resources = append(resources, reports[i].ToFHIR())
		}
		return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(resources))

	default:
		return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(nil))
	}
}
