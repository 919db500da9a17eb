// Package patient owns the patient-summary records, the /ps and
// /krp/pacient registry endpoints and the core FHIR projections.
package patient

import (
	"fmt"

	"github.com/ezkzr/kzr-mock-server/internal/platform/fhir"
	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
)

func syntheticID(prefix string, ix int, rid string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, ix, rid)
}

// Header identifies a patient. Gender is one of M, Z, X.
type Header struct {
	Rid         string        `json:"rid"`
	GivenName   string        `json:"givenName"`
	FamilyName  string        `json:"familyName"`
	DateOfBirth dateonly.Date `json:"dateOfBirth"`
	Gender      string        `json:"gender"`
}

type Allergy struct {
	Text        string `json:"text"`
	CodeSystem  string `json:"codeSystem,omitempty"`
	Code        string `json:"code,omitempty"`
	Criticality string `json:"criticality,omitempty"`
}

type Problem struct {
	Text       string `json:"text"`
	CodeSystem string `json:"codeSystem,omitempty"`
	Code       string `json:"code,omitempty"`
}

type Medication struct {
	Text   string `json:"text"`
	Dosage string `json:"dosage,omitempty"`
	Route  string `json:"route,omitempty"`
}

type Vaccination struct {
	Text string         `json:"text"`
	Date *dateonly.Date `json:"date,omitempty"`
}

type Implant struct {
	Text string `json:"text"`
}

type Body struct {
	Allergies    []Allergy     `json:"allergies,omitempty"`
	Problems     []Problem     `json:"problems,omitempty"`
	Medications  []Medication  `json:"medications,omitempty"`
	Vaccinations []Vaccination `json:"vaccinations,omitempty"`
	Implants     []Implant     `json:"implants,omitempty"`
}

type Summary struct {
	Header Header `json:"header"`
	Body   Body   `json:"body"`
}

func (s *Summary) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Patient",
		"id":           s.Header.Rid,
		"identifier": []fhir.Identifier{{
			System: fhir.PatientIdentifierSystem,
			Value:  s.Header.Rid,
		}},
		"name": []fhir.HumanName{{
			Family: s.Header.FamilyName,
			Given:  []string{s.Header.GivenName},
		}},
		"gender":    fhir.MapGender(s.Header.Gender),
		"birthDate": s.Header.DateOfBirth.String(),
	}
}

// ToFHIR projects the allergy as an AllergyIntolerance. The synthetic id is
// keyed by the 1-based position within the patient's allergy list.
func (a Allergy) ToFHIR(rid string, ix int) map[string]interface{} {
	code := map[string]interface{}{"text": a.Text}
	if a.Code != "" && a.CodeSystem != "" {
		code["coding"] = []fhir.Coding{{
			System:  fhir.MapCodeSystem(a.CodeSystem),
			Code:    a.Code,
			Display: a.Text,
		}}
	}
	result := map[string]interface{}{
		"resourceType": "AllergyIntolerance",
		"id":           syntheticID("alg", ix, rid),
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: fhir.SystemAllergyClinical, Code: "active"}},
		},
		"verificationStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: fhir.SystemAllergyVerification, Code: "confirmed"}},
		},
		"code":    code,
		"patient": fhir.PatientRef(rid),
	}
	if crit := fhir.MapCriticality(a.Criticality); crit != "" {
		result["criticality"] = crit
	}
	return result
}

func (p Problem) ToFHIR(rid string, ix int) map[string]interface{} {
	code := map[string]interface{}{"text": p.Text}
	if p.Code != "" && p.CodeSystem != "" {
		code["coding"] = []fhir.Coding{{
			System:  fhir.MapCodeSystem(p.CodeSystem),
			Code:    p.Code,
			Display: p.Text,
		}}
	}
	return map[string]interface{}{
		"resourceType": "Condition",
		"id":           syntheticID("cond", ix, rid),
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: fhir.SystemConditionClinical, Code: "active"}},
		},
		"code":    code,
		"subject": fhir.PatientRef(rid),
	}
}

func (m Medication) ToFHIR(rid string, ix int) map[string]interface{} {
	result := map[string]interface{}{
		"resourceType":              "MedicationStatement",
		"id":                        syntheticID("meds", ix, rid),
		"status":                    "active",
		"medicationCodeableConcept": map[string]string{"text": m.Text},
		"subject":                   fhir.PatientRef(rid),
	}
	if m.Dosage != "" {
		dosage := map[string]interface{}{"text": m.Dosage}
		if m.Route != "" {
			dosage["route"] = map[string]string{"text": m.Route}
		}
		result["dosage"] = []map[string]interface{}{dosage}
	}
	return result
}

func (v Vaccination) ToFHIR(rid string, ix int) map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Immunization",
		"id":           syntheticID("imm", ix, rid),
		"status":       "completed",
		"vaccineCode":  map[string]string{"text": v.Text},
		"patient":      fhir.PatientRef(rid),
	}
	if v.Date != nil {
		result["occurrenceDateTime"] = v.Date.String()
	}
	return result
}

func (d Implant) ToFHIR(rid string, ix int) map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Device",
		"id":           syntheticID("dev", ix, rid),
		"type":         map[string]string{"text": d.Text},
		"patient":      fhir.PatientRef(rid),
	}
}

// SummaryResources lists the Patient resource followed by every body
// resource, in the fixed allergy, problem, medication, vaccination, implant
// order. Used by $summary collection bundles.
func (s *Summary) SummaryResources() []interface{} {
	rid := s.Header.Rid
	resources := []interface{}{s.ToFHIR()}
	for i, a := range s.Body.Allergies {
		resources = append(resources, a.ToFHIR(rid, i+1))
	}
	for i, p := range s.Body.Problems {
		resources = append(resources, p.ToFHIR(rid, i+1))
	}
	for i, m := range s.Body.Medications {
		resources = append(resources, m.ToFHIR(rid, i+1))
	}
	for i, v := range s.Body.Vaccinations {
		resources = append(resources, v.ToFHIR(rid, i+1))
	}
	for i, d := range s.Body.Implants {
		resources = append(resources, d.ToFHIR(rid, i+1))
	}
	return resources
}

