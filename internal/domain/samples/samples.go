// Package samples exposes the seed data and ready-made request bodies under
// /api/v1/samples so integrators can explore the mock registries without
// reading the data files.
package samples

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/internal/domain/discharge"
	"github.com/ezkzr/kzr-mock-server/internal/domain/ems"
	"github.com/ezkzr/kzr-mock-server/internal/domain/imaging"
	"github.com/ezkzr/kzr-mock-server/internal/domain/lab"
	"github.com/ezkzr/kzr-mock-server/internal/domain/notification"
	"github.com/ezkzr/kzr-mock-server/internal/domain/patient"
	"github.com/ezkzr/kzr-mock-server/internal/domain/registry"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
	"github.com/ezkzr/kzr-mock-server/pkg/pagination"
)

// exampleZadostID keeps the index URLs copy-pasteable.
const exampleZadostID = "11111111-1111-1111-1111-111111111111"

type Handler struct {
	registry  *registry.Store
	patients  *patient.Store
	discharge *discharge.Store
	labs      *lab.Store
	imagery   *imaging.Store
	runs      *ems.Store
}

func NewHandler(reg *registry.Store, patients *patient.Store, hdr *discharge.Store, labs *lab.Store, imagery *imaging.Store, runs *ems.Store) *Handler {
	return &Handler{registry: reg, patients: patients, discharge: hdr, labs: labs, imagery: imagery, runs: runs}
}

func (h *Handler) RegisterRoutes(samples *echo.Group) {
	samples.GET("/", h.Index)
	samples.GET("/providers", h.Providers)
	samples.GET("/workers", h.Workers)
	samples.GET("/ps", h.PatientSummaries)
	samples.GET("/hdr", h.DischargeReports)
	samples.GET("/lab", h.LabReports)
	samples.GET("/mi", h.ImagingReports)
	samples.GET("/ems", h.EmsRuns)

	samples.GET("/body/reklamace", h.BodyReklamace)
	samples.GET("/body/notifikace", h.BodyNotifikace)
	samples.GET("/body/lab-report", h.BodyLabReport)
	samples.GET("/body/lab-order", h.BodyLabOrder)
	samples.GET("/body/imaging-report", h.BodyImagingReport)
	samples.GET("/body/imaging-order", h.BodyImagingOrder)
	samples.GET("/body/ems-record", h.BodyEmsRecord)
}

// Index lists the seed identifiers and one example URL per endpoint family.
func (h *Handler) Index(c echo.Context) error {
	providers := h.registry.Providers()
	workers := h.registry.Workers()
	summaries := h.patients.All()
	reports := h.discharge.All()

	exDate := time.Now().UTC().Format("2006-01-02")
	common := fmt.Sprintf("ucel=Test&datum=%s", exDate)

	patientRids := make([]map[string]interface{}, 0, len(summaries))
	for _, s := range summaries {
		patientRids = append(patientRids, map[string]interface{}{
			"rid":        s.Header.Rid,
			"givenName":  s.Header.GivenName,
			"familyName": s.Header.FamilyName,
		})
	}

	examples := map[string]string{
		"ciselnik_stat":       fmt.Sprintf("/api/v1/ciselnik/%s/stat?%s", exampleZadostID, common),
		"ciselnik_pohlavi":    fmt.Sprintf("/api/v1/ciselnik/%s/pohlavi?%s", exampleZadostID, common),
		"ciselnik_pojistovna": fmt.Sprintf("/api/v1/ciselnik/%s/zdravotni_pojistovna?%s", exampleZadostID, common),

		"fhir_metadata": "/fhir/metadata",

		"ezadanka_lab_post": fmt.Sprintf("/api/v1/lab/order/%s", exampleZadostID),
		"ezadanka_mi_post":  fmt.Sprintf("/api/v1/mi/order/%s", exampleZadostID),
	}
	if len(providers) > 0 {
		examples["krpzs_get_ico"] = fmt.Sprintf("/api/v1/krpzs/hledat/%s/ico?ico=%s&%s", exampleZadostID, providers[0].Ico, common)
	}
	if len(workers) > 0 {
		examples["krzp_get_id"] = fmt.Sprintf("/api/v1/krzp/hledat/%s/krzpid?id=%d&%s", exampleZadostID, workers[0].KrzpId, common)
		examples["krzp_get_osoba"] = fmt.Sprintf("/api/v1/krzp/hledat/%s/jmeno_prijmeni_datum_narozeni?jmeno=%s&prijmeni=%s&datumNarozeni=%s&%s",
			exampleZadostID, url.QueryEscape(workers[0].Jmeno), url.QueryEscape(workers[0].Prijmeni), workers[0].DatumNarozeni, common)
		examples["krzp_get_zamestnavatel"] = fmt.Sprintf("/api/v1/krzp/hledat/%s/zamestnavatel?ico=%s&%s", exampleZadostID, workers[0].ZamestnavatelIco, common)
	}
	if len(summaries) > 0 {
		first := summaries[0].Header
		examples["ps_by_rid"] = fmt.Sprintf("/api/v1/ps/rid/%s?rid=%s&%s", exampleZadostID, first.Rid, common)
		examples["ps_by_osoba"] = fmt.Sprintf("/api/v1/ps/osoba/%s?jmeno=%s&prijmeni=%s&datumNarozeni=%s&%s",
			exampleZadostID, url.QueryEscape(first.GivenName), url.QueryEscape(first.FamilyName), first.DateOfBirth, common)
		examples["lab_by_rid"] = fmt.Sprintf("/api/v1/lab/rid/%s?rid=%s&%s", exampleZadostID, first.Rid, common)
		examples["mi_by_rid"] = fmt.Sprintf("/api/v1/mi/rid/%s?rid=%s&%s", exampleZadostID, first.Rid, common)
		examples["fhir_patient"] = fmt.Sprintf("/fhir/Patient/%s", first.Rid)
		examples["fhir_summary"] = fmt.Sprintf("/fhir/Patient/%s/$summary", first.Rid)
	}
	if len(reports) > 0 {
		examples["hdr_by_rid"] = fmt.Sprintf("/api/v1/hdr/rid/%s?rid=%s&%s", exampleZadostID, reports[0].Header.Rid, common)
		examples["fhir_document"] = fmt.Sprintf("/fhir/Bundle/%s/$discharge", reports[0].Header.Rid)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"note":        "Ukázková data a příklady volání.",
		"providers":   providers,
		"workers":     workers,
		"patientRids": patientRids,
		"examples":    examples,
	})
}

func paged[T any](c echo.Context, items []T) error {
	p := pagination.FromContext(c)
	lo, hi := p.Window(len(items))
	return c.JSON(http.StatusOK, pagination.NewResponse(items[lo:hi], len(items), p))
}

func (h *Handler) Providers(c echo.Context) error {
	return paged(c, h.registry.Providers())
}

func (h *Handler) Workers(c echo.Context) error {
	return paged(c, h.registry.Workers())
}

func (h *Handler) PatientSummaries(c echo.Context) error {
	return paged(c, h.patients.All())
}

func (h *Handler) DischargeReports(c echo.Context) error {
	return paged(c, h.discharge.All())
}

func (h *Handler) LabReports(c echo.Context) error {
	return paged(c, h.labs.AllReports())
}

func (h *Handler) ImagingReports(c echo.Context) error {
	return paged(c, h.imagery.AllReports())
}

func (h *Handler) EmsRuns(c echo.Context) error {
	return paged(c, h.runs.All())
}

func (h *Handler) info() *envelope.Dotaz {
	now := time.Now().UTC()
	return &envelope.Dotaz{Ucel: "Test", Datum: &now}
}

func (h *Handler) firstProvider() registry.Provider {
	if ps := h.registry.Providers(); len(ps) > 0 {
		return ps[0]
	}
	return registry.Provider{}
}

func (h *Handler) firstRid() string {
	if summaries := h.patients.All(); len(summaries) > 0 {
		return summaries[0].Header.Rid
	}
	return ""
}

func (h *Handler) BodyReklamace(c echo.Context) error {
	p := h.firstProvider()
	ref := 42
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": registry.ReklamaceBulk{
			Krpzsid:        123456789,
			UlozkaId:       "ORG001",
			UlozkaRef:      &ref,
			DatumReklamace: time.Now().UTC().Truncate(24 * time.Hour),
			Reklamujici:    &registry.Reklamujici{Ico: p.Ico, Nazev: p.Nazev, KontaktEmail: "it@example.org"},
			PolozkyReklamace: []registry.ReklamaceItem{{
				Klic:              "Nazev",
				PuvodniHodnota:    "Nemocnice Alfa, a.s.",
				PozadovanaHodnota: "Nemocnice ALFA a.s.",
			}},
			Zduvodneni:     "Oprava údajů v registru",
			PopisReklamace: "Formální úprava názvu",
		},
	})
}

func (h *Handler) BodyNotifikace(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": notification.Request{
			System:   "KRPZS",
			Typ:      "zmena-pzs",
			Kriteria: fmt.Sprintf("ico=%s", h.firstProvider().Ico),
			Kanal:    "webhook",
		},
	})
}

func (h *Handler) BodyLabReport(c echo.Context) error {
	orderID := ""
	if orders := h.labs.Orders(); len(orders) > 0 {
		orderID = orders[0].ID.String()
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": lab.Report{
			Header: lab.Header{
				Rid:        h.firstRid(),
				Issued:     time.Now().UTC(),
				Laboratory: "Ukázková laboratoř",
				OrderID:    orderID,
			},
			Results: []lab.Result{{
				Code: "718-7", Text: "Hemoglobin", Value: "140", Unit: "g/L",
				ReferenceRange: "135-175", AbnormalFlag: "N",
			}},
		},
	})
}

func (h *Handler) BodyLabOrder(c echo.Context) error {
	p := h.firstProvider()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": lab.Order{
			ID:            uuid.New(),
			Rid:           h.firstRid(),
			Created:       time.Now().UTC(),
			Tests:         []string{"Glukóza", "Hemoglobin"},
			RequesterIco:  p.Ico,
			RequesterName: p.Nazev,
			Status:        "new",
		},
	})
}

func (h *Handler) BodyImagingReport(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": imaging.Report{
			Header: imaging.Header{
				Rid:          h.firstRid(),
				Performed:    time.Now().UTC(),
				Modality:     "US",
				Performer:    "MUDr. Tester",
				FacilityName: h.firstProvider().Nazev,
			},
			Indication: "Kontrolní vyšetření",
			Findings:   "Bez patrné patologie.",
			Conclusion: "Nález v normě.",
		},
	})
}

func (h *Handler) BodyImagingOrder(c echo.Context) error {
	p := h.firstProvider()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": imaging.Order{
			ID:                 uuid.New(),
			Rid:                h.firstRid(),
			Created:            time.Now().UTC(),
			RequestedModality:  "CT",
			RequestedProcedure: "CT hrudníku",
			ClinicalInfo:       "Kontrola po terapii",
			RequesterIco:       p.Ico,
			RequesterName:      p.Nazev,
			Status:             "new",
		},
	})
}

func (h *Handler) BodyEmsRecord(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"zadostInfo": h.info(),
		"zadostData": ems.Run{
			ID:            uuid.New(),
			Rid:           h.firstRid(),
			Started:       time.Now().UTC(),
			Reason:        "Bolest na hrudi",
			Vitals:        &ems.Vitals{Systolic: 150, Diastolic: 90, HeartRate: 100, Spo2: 95, Temperature: 36.8},
			Interventions: []string{"ASA 500 mg", "Monitoring"},
			Outcome:       "Převoz",
			Destination:   h.firstProvider().Nazev,
		},
	})
}
