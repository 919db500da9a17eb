// Package lab owns the laboratory reports and orders, the /lab registry
// endpoints and the laboratory Observation and DiagnosticReport
// projections.
package lab

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
)

type Header struct {
	Rid        string    `json:"rid"`
	Issued     time.Time `json:"issued"`
	Laboratory string    `json:"laboratory"`
	OrderID    string    `json:"orderId,omitempty"`
}

type Result struct {
	Code           string `json:"code,omitempty"`
	Text           string `json:"text"`
	Value          string `json:"value,omitempty"`
	Unit           string `json:"unit,omitempty"`
	ReferenceRange string `json:"referenceRange,omitempty"`
	AbnormalFlag   string `json:"abnormalFlag,omitempty"`
}

type Report struct {
	Header   Header   `json:"header"`
	Results  []Result `json:"results"`
	Comments string   `json:"comments,omitempty"`
}

type Order struct {
	ID            uuid.UUID `json:"id"`
	Rid           string    `json:"rid"`
	Created       time.Time `json:"created"`
	Tests         []string  `json:"tests"`
	RequesterIco  string    `json:"requesterIco"`
	RequesterName string    `json:"requesterName"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority,omitempty"`
	ClinicalInfo  string    `json:"clinicalInfo,omitempty"`
}

// ToFHIR projects a single result as a laboratory Observation. A value that
// parses as a decimal after comma normalization becomes a valueQuantity,
// anything else a valueString, never both.
func (r Result) ToFHIR(rid string, ix int) map[string]interface{} {
	code := map[string]interface{}{"text": r.Text}
	if r.Code != "" {
		code["coding"] = []fhir.Coding{{System: fhir.SystemLOINC, Code: r.Code, Display: r.Text}}
	}
	result := map[string]interface{}{
		"resourceType": "Observation",
		"id":           fmt.Sprintf("labobs-%d-%s", ix, rid),
		"status":       "final",
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{System: fhir.SystemObservationCategory, Code: "laboratory", Display: "Laboratory"}},
		}},
		"code":              code,
		"subject":           fhir.PatientRef(rid),
		"effectiveDateTime": time.Now().UTC().Format(time.RFC3339),
	}

	normalized := strings.ReplaceAll(r.Value, ",", ".")
	if v, err := strconv.ParseFloat(normalized, 64); err == nil && strings.TrimSpace(r.Value) != "" {
		result["valueQuantity"] = fhir.Quantity{Value: v, Unit: r.Unit}
	} else if r.Value != "" {
		result["valueString"] = r.Value
	}

	if strings.TrimSpace(r.ReferenceRange) != "" {
		result["referenceRange"] = []map[string]string{{"text": r.ReferenceRange}}
	}
	if strings.TrimSpace(r.AbnormalFlag) != "" {
		result["interpretation"] = []map[string]string{{"text": r.AbnormalFlag}}
	}
	return result
}

// ToFHIR projects the report as a laboratory DiagnosticReport referencing
// its per-result Observations.
func (r *Report) ToFHIR() map[string]interface{} {
	refs := make([]fhir.Reference, 0, len(r.Results))
	for i := range r.Results {
		refs = append(refs, fhir.Reference{
			Reference: fmt.Sprintf("Observation/labobs-%d-%s", i+1, r.Header.Rid),
		})
	}
	return map[string]interface{}{
		"resourceType": "DiagnosticReport",
		"id":           fmt.Sprintf("labdr-%s-%s", r.Header.Rid, r.Header.Issued.Format("20060102150405")),
		"status":       "final",
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{System: fhir.SystemV20074, Code: "LAB", Display: "Laboratory"}},
		}},
		"code": map[string]interface{}{
			"coding": []fhir.Coding{{System: fhir.SystemLOINC, Code: "11502-2", Display: "Laboratory report"}},
			"text":   "Laboratorní zpráva",
		},
		"subject":           fhir.PatientRef(r.Header.Rid),
		"effectiveDateTime": r.Header.Issued.Format(time.RFC3339),
		"issued":            r.Header.Issued.Format(time.RFC3339),
		"performer":         []fhir.Reference{{Display: r.Header.Laboratory}},
		"result":            refs,
	}
}
