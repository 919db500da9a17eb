// Package discharge owns the hospital discharge reports (HDR), their /hdr
// registry endpoints and the Composition, DocumentReference and document
// bundle projections.
package discharge

import (
	"fmt"
	"strings"
	"time"

	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
)

type Header struct {
	Rid             string    `json:"rid"`
	Discharge       time.Time `json:"discharge"`
	AttendingDoctor string    `json:"attendingDoctor"`
	FacilityName    string    `json:"facilityName"`
}

type MedEntry struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type Report struct {
	Header               Header     `json:"header"`
	ReasonForAdmission   string     `json:"reasonForAdmission"`
	Diagnoses            []string   `json:"diagnoses,omitempty"`
	Procedures           []string   `json:"procedures,omitempty"`
	Course               string     `json:"course,omitempty"`
	DischargeMedications []MedEntry `json:"dischargeMedications,omitempty"`
	Recommendations      string     `json:"recommendations,omitempty"`
	FollowUp             string     `json:"followUp,omitempty"`
}

func paragraph(text string) fhir.Narrative {
	return fhir.Narrative{
		Status: "generated",
		Div:    fmt.Sprintf(`<div xmlns="http://www.w3.org/1999/xhtml"><p>%s</p></div>`, text),
	}
}

func itemList(items []string) fhir.Narrative {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("<li>")
		b.WriteString(it)
		b.WriteString("</li>")
	}
	return fhir.Narrative{
		Status: "generated",
		Div:    fmt.Sprintf(`<div xmlns="http://www.w3.org/1999/xhtml"><ul>%s</ul></div>`, b.String()),
	}
}

type section struct {
	Title string         `json:"title"`
	Text  fhir.Narrative `json:"text"`
}

// ToFHIR projects the report as a Composition with the fixed seven-section
// discharge layout.
func (r *Report) ToFHIR() map[string]interface{} {
	meds := make([]string, 0, len(r.DischargeMedications))
	for _, m := range r.DischargeMedications {
		meds = append(meds, strings.TrimSpace(fmt.Sprintf("%s %s %s", m.Name, m.Dosage, m.Instructions)))
	}

	return map[string]interface{}{
		"resourceType": "Composition",
		"id":           "comp-hdr-" + r.Header.Rid,
		"status":       "final",
		"type": map[string]interface{}{
			"coding": []fhir.Coding{{System: fhir.SystemLOINC, Code: "18842-5", Display: "Discharge summary"}},
			"text":   "Propouštěcí zpráva",
		},
		"subject":   fhir.PatientRef(r.Header.Rid),
		"date":      r.Header.Discharge.Format(time.RFC3339),
		"title":     "Propouštěcí zpráva",
		"author":    []fhir.Reference{{Display: r.Header.AttendingDoctor}},
		"custodian": fhir.Reference{Display: r.Header.FacilityName},
		"section": []section{
			{Title: "Důvod přijetí", Text: paragraph(r.ReasonForAdmission)},
			{Title: "Diagnózy", Text: itemList(r.Diagnoses)},
			{Title: "Výkony", Text: itemList(r.Procedures)},
			{Title: "Průběh hospitalizace", Text: paragraph(r.Course)},
			{Title: "Medikace při propuštění", Text: itemList(meds)},
			{Title: "Doporučení", Text: paragraph(r.Recommendations)},
			{Title: "Následná péče", Text: paragraph(r.FollowUp)},
		},
	}
}

// ToDocumentReference projects the report as a DocumentReference pointing
// at the $discharge document bundle.
func (r *Report) ToDocumentReference() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "DocumentReference",
		"id":           "docref-hdr-" + r.Header.Rid,
		"status":       "current",
		"type": map[string]interface{}{
			"coding": []fhir.Coding{{System: fhir.SystemLOINC, Code: "18842-5", Display: "Discharge summary"}},
			"text":   "Propouštěcí zpráva",
		},
		"subject": fhir.PatientRef(r.Header.Rid),
		"date":    r.Header.Discharge.Format(time.RFC3339),
		"content": []map[string]interface{}{{
			"attachment": fhir.Attachment{
				ContentType: fhir.ContentType,
				URL:         fmt.Sprintf("/fhir/Bundle/%s/$discharge", r.Header.Rid),
			},
		}},
	}
}
