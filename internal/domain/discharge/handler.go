package discharge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/internal/domain/patient"
	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

type Handler struct {
	store    *Store
	patients *patient.Store
}

func NewHandler(store *Store, patients *patient.Store) *Handler {
	return &Handler{store: store, patients: patients}
}

func (h *Handler) RegisterRoutes(hdr, fhirGroup *echo.Group) {
	hdr.GET("/rid/:zadostId", h.GetByRid)
	hdr.GET("/osoba/:zadostId", h.GetByPerson)

	fhirGroup.GET("/Composition", h.CompositionFHIR)
	fhirGroup.GET("/DocumentReference", h.DocumentReferenceFHIR)
	fhirGroup.GET("/Bundle/:rid/$discharge", h.DischargeBundleFHIR)
}

func (h *Handler) GetByRid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	patientRid := c.QueryParam("rid")
	if patientRid == "" {
		errs = append(errs, "rid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	rep, ok := h.store.FindByRid(patientRid)
	if !ok {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Propouštěcí zpráva pro RID %s nenalezena.", patientRid))
	}
	return envelope.OK(c, zadostID, "HDR", rep)
}

func (h *Handler) GetByPerson(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	jmeno := c.QueryParam("jmeno")
	prijmeni := c.QueryParam("prijmeni")
	if jmeno == "" {
		errs = append(errs, "jmeno je povinné.")
	}
	if prijmeni == "" {
		errs = append(errs, "prijmeni je povinné.")
	}
	dob, dobErr := dateonly.Parse(c.QueryParam("datumNarozeni"))
	if dobErr != nil {
		errs = append(errs, "datumNarozeni je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	sum, ok := h.patients.FindByPerson(jmeno, prijmeni, dob)
	if !ok {
		return envelope.NotFound(c, zadostID, "Pacient nenalezen.")
	}
	rep, ok := h.store.FindByRid(sum.Header.Rid)
	if !ok {
		return envelope.NotFound(c, zadostID, "Propouštěcí zpráva nenalezena.")
	}
	return envelope.OK(c, zadostID, "HDR", rep)
}

// -- FHIR API --

func (h *Handler) CompositionFHIR(c echo.Context) error {
	patientRid := c.QueryParam("patient")
	rep, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("No HDR for patient %s.", patientRid))
	}
	return fhir.JSON(c, http.StatusOK, fhir.NewSearchset([]interface{}{rep.ToFHIR()}))
}

func (h *Handler) DocumentReferenceFHIR(c echo.Context) error {
	patientRid := c.QueryParam("patient")
	rep, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("No HDR for patient %s.", patientRid))
	}
	return fhir.JSON(c, http.StatusOK, fhir.NewSearchset([]interface{}{rep.ToDocumentReference()}))
}

// DischargeBundleFHIR assembles the document bundle: Composition first,
// then the Patient. A bare Patient stub stands in when no summary exists.
func (h *Handler) DischargeBundleFHIR(c echo.Context) error {
	patientRid := c.Param("rid")
	rep, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("No HDR for patient %s.", patientRid))
	}

	var patientRes map[string]interface{}
	if sum, found := h.patients.FindByRid(patientRid); found {
		patientRes = sum.ToFHIR()
	} else {
		patientRes = map[string]interface{}{"resourceType": "Patient", "id": patientRid}
	}

	doc := fhir.NewDocument(time.Now().UTC().Format(time.RFC3339), []interface{}{rep.ToFHIR(), patientRes})
	return fhir.JSON(c, http.StatusOK, doc)
}
