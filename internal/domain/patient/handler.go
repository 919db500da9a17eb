package patient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/internal/domain/rid"
	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

type Handler struct {
	store    *Store
	registry *rid.Registry
}

func NewHandler(store *Store, registry *rid.Registry) *Handler {
	return &Handler{store: store, registry: registry}
}

func (h *Handler) RegisterRoutes(ps, krp, fhirGroup *echo.Group) {
	ps.GET("/rid/:zadostId", h.GetByRid)
	ps.GET("/osoba/:zadostId", h.GetByPerson)

	krp.POST("/pacient/:zadostId", h.CreatePatient)
	krp.GET("/pacient/:zadostId", h.GetPatient)

	fhirGroup.GET("/Patient/:rid", h.PatientFHIR)
	fhirGroup.GET("/Patient/:rid/$summary", h.SummaryFHIR)
	fhirGroup.GET("/AllergyIntolerance", h.AllergiesFHIR)
	fhirGroup.GET("/Condition", h.ConditionsFHIR)
	fhirGroup.GET("/MedicationStatement", h.MedicationsFHIR)
	fhirGroup.GET("/Immunization", h.ImmunizationsFHIR)
	fhirGroup.GET("/Device", h.DevicesFHIR)
}

// -- Registry API --

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

	sum, ok := h.store.FindByRid(patientRid)
	if !ok {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Pacient s RID %s nenalezen.", patientRid))
	}
	return envelope.OK(c, zadostID, "PatientSummary", sum)
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

	sum, ok := h.store.FindByPerson(jmeno, prijmeni, dob)
	if !ok {
		return envelope.NotFound(c, zadostID, "Pacient nenalezen.")
	}
	return envelope.OK(c, zadostID, "PatientSummary", sum)
}

type createPatientData struct {
	GivenName   string        `json:"givenName"`
	FamilyName  string        `json:"familyName"`
	DateOfBirth dateonly.Date `json:"dateOfBirth"`
	Gender      string        `json:"gender"`
	Rid         string        `json:"rid,omitempty"`
	Drid        string        `json:"drid,omitempty"`
}

type createPatientRequest struct {
	ZadostInfo *envelope.Dotaz    `json:"zadostInfo"`
	ZadostData *createPatientData `json:"zadostData"`
}

func (h *Handler) CreatePatient(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	var body createPatientRequest
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else {
		if strings.TrimSpace(body.ZadostData.GivenName) == "" {
			errs = append(errs, "GivenName je povinné.")
		}
		if strings.TrimSpace(body.ZadostData.FamilyName) == "" {
			errs = append(errs, "FamilyName je povinné.")
		}
		if strings.TrimSpace(body.ZadostData.Gender) == "" {
			errs = append(errs, "Gender je povinné.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	data := body.ZadostData
	rec, err := h.registry.Register(data.Rid, data.Drid, data.GivenName, data.FamilyName, data.DateOfBirth)
	switch {
	case errors.Is(err, rid.ErrRidTaken):
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"Zadaný RID již existuje."})
	case errors.Is(err, rid.ErrDridInvalid):
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"DRID neexistuje nebo není dočasný."})
	case err != nil:
		return envelope.ServerError(c, zadostID, envelope.SubStavGenerator, []string{err.Error()})
	}

	sum := Summary{
		Header: Header{
			Rid:         rec.Rid,
			GivenName:   data.GivenName,
			FamilyName:  data.FamilyName,
			DateOfBirth: data.DateOfBirth,
			Gender:      strings.ToUpper(data.Gender),
		},
	}
	h.store.Add(sum)

	return envelope.Created(c, zadostID, "Pacient založen", map[string]interface{}{
		"rid":     rec.Rid,
		"patient": sum.Header,
	})
}

func (h *Handler) GetPatient(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	patientRid := c.QueryParam("rid")
	if patientRid == "" {
		errs = append(errs, "rid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	sum, ok := h.store.FindByRid(patientRid)
	if !ok {
		return envelope.NotFound(c, zadostID, "Pacient nenalezen.")
	}
	return envelope.OK(c, zadostID, "KRP Pacient", sum)
}

// -- FHIR API --

func (h *Handler) PatientFHIR(c echo.Context) error {
	patientRid := c.Param("rid")
	sum, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("Patient %s not found.", patientRid))
	}
	return fhir.JSON(c, http.StatusOK, sum.ToFHIR())
}

func (h *Handler) SummaryFHIR(c echo.Context) error {
	patientRid := c.Param("rid")
	sum, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("Patient %s not found.", patientRid))
	}
	return fhir.JSON(c, http.StatusOK, fhir.NewCollection(sum.SummaryResources()))
}

// searchBody runs the shared existing-patient check and projects one body
// list into a searchset bundle.
func (h *Handler) searchBody(c echo.Context, project func(sum Summary) []interface{}) error {
	patientRid := c.QueryParam("patient")
	sum, ok := h.store.FindByRid(patientRid)
	if !ok {
		return fhir.NotFound(c, fmt.Sprintf("Patient %s not found.", patientRid))
	}
	return fhir.JSON(c, http.StatusOK, fhir.NewSearchset(project(sum)))
}

func (h *Handler) AllergiesFHIR(c echo.Context) error {
	return h.searchBody(c, func(sum Summary) []interface{} {
		out := make([]interface{}, 0, len(sum.Body.Allergies))
		for i, a := range sum.Body.Allergies {
			out = append(out, a.ToFHIR(sum.Header.Rid, i+1))
		}
		return out
	})
}

func (h *Handler) ConditionsFHIR(c echo.Context) error {
	return h.searchBody(c, func(sum Summary) []interface{} {
		out := make([]interface{}, 0, len(sum.Body.Problems))
		for i, p := range sum.Body.Problems {
			out = append(out, p.ToFHIR(sum.Header.Rid, i+1))
		}
		return out
	})
}

func (h *Handler) MedicationsFHIR(c echo.Context) error {
	return h.searchBody(c, func(sum Summary) []interface{} {
		out := make([]interface{}, 0, len(sum.Body.Medications))
		for i, m := range sum.Body.Medications {
			out = append(out, m.ToFHIR(sum.Header.Rid, i+1))
		}
		return out
	})
}

func (h *Handler) ImmunizationsFHIR(c echo.Context) error {
	return h.searchBody(c, func(sum Summary) []interface{} {
		out := make([]interface{}, 0, len(sum.Body.Vaccinations))
		for i, v := range sum.Body.Vaccinations {
			out = append(out, v.ToFHIR(sum.Header.Rid, i+1))
		}
		return out
	})
}

func (h *Handler) DevicesFHIR(c echo.Context) error {
	return h.searchBody(c, func(sum Summary) []interface{} {
		out := make([]interface{}, 0, len(sum.Body.Implants))
		for i, d := range sum.Body.Implants {
			out = append(out, d.ToFHIR(sum.Header.Rid, i+1))
		}
		return out
	})
}
