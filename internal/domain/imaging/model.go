// Package imaging owns the imaging (MI) reports and orders, the /mi
// registry endpoints and the imaging DiagnosticReport projection.
package imaging

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
)

type Header struct {
	Rid          string    `json:"rid"`
	Performed    time.Time `json:"performed"`
	Modality     string    `json:"modality"`
	Performer    string    `json:"performer"`
	FacilityName string    `json:"facilityName"`
}

type Report struct {
	Header          Header `json:"header"`
	Indication      string `json:"indication,omitempty"`
	Findings        string `json:"findings"`
	Conclusion      string `json:"conclusion"`
	Recommendations string `json:"recommendations,omitempty"`
}

type Order struct {
	ID                 uuid.UUID `json:"id"`
	Rid                string    `json:"rid"`
	Created            time.Time `json:"created"`
	RequestedModality  string    `json:"requestedModality"`
	RequestedProcedure string    `json:"requestedProcedure,omitempty"`
	ClinicalInfo       string    `json:"clinicalInfo,omitempty"`
	RequesterIco       string    `json:"requesterIco"`
	RequesterName      string    `json:"requesterName"`
	Status             string    `json:"status"`
}

// ToFHIR projects the report as an imaging DiagnosticReport. The narrative
// is carried as a base64 text/plain attachment combining findings and
// conclusion.
func (r *Report) ToFHIR() map[string]interface{} {
	narrative := fmt.Sprintf("%s\n\nZávěr: %s", r.Findings, r.Conclusion)
	return map[string]interface{}{
		"resourceType": "DiagnosticReport",
		"id":           fmt.Sprintf("imgdr-%s-%s", r.Header.Rid, r.Header.Performed.Format("20060102150405")),
		"status":       "final",
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{System: fhir.SystemV20074, Code: "RAD", Display: "Radiology"}},
		}},
		"code": map[string]interface{}{
			"coding": []fhir.Coding{{System: fhir.SystemLOINC, Code: "18748-4", Display: "Diagnostic imaging report"}},
			"text":   "Zpráva z obrazového vyšetření",
		},
		"subject":           fhir.PatientRef(r.Header.Rid),
		"effectiveDateTime": r.Header.Performed.Format(time.RFC3339),
		"issued":            r.Header.Performed.Format(time.RFC3339),
		"performer":         []fhir.Reference{{Display: r.Header.FacilityName}},
		"conclusion":        r.Conclusion,
		"presentedForm": []fhir.Attachment{{
			ContentType: "text/plain",
			Data:        base64.StdEncoding.EncodeToString([]byte(narrative)),
		}},
	}
}
