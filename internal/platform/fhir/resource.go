// Package fhir holds the FHIR R4 primitives, bundle constructors and
// vocabulary maps used by the read-only projection API.
package fhir

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContentType is the FHIR JSON media type used by every /fhir response.
const ContentType = "application/fhir+json"

// PatientIdentifierSystem is the OID under which RIDs are issued.
const PatientIdentifierSystem = "urn:oid:1.2.203.0.0.1.1"

// Code system URIs referenced by the projections.
const (
	SystemLOINC                = "http://loinc.org"
	SystemSNOMED               = "http://snomed.info/sct"
	SystemICD10                = "http://hl7.org/fhir/sid/icd-10"
	SystemV20074               = "http://terminology.hl7.org/CodeSystem/v2-0074"
	SystemObservationCategory  = "http://terminology.hl7.org/CodeSystem/observation-category"
	SystemAllergyClinical      = "http://terminology.hl7.org/CodeSystem/allergyintolerance-clinical"
	SystemAllergyVerification  = "http://terminology.hl7.org/CodeSystem/allergyintolerance-verification"
	SystemConditionClinical    = "http://terminology.hl7.org/CodeSystem/condition-clinical"
)

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

type HumanName struct {
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Narrative is the xhtml text block used by Composition sections.
type Narrative struct {
	Status string `json:"status"`
	Div    string `json:"div"`
}

type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Data        string `json:"data,omitempty"`
	URL         string `json:"url,omitempty"`
}

// PatientRef builds the Patient/{rid} reference used across projections.
func PatientRef(rid string) Reference {
	return Reference{Reference: "Patient/" + rid}
}

// JSON writes a payload with the FHIR media type.
func JSON(c echo.Context, code int, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.Blob(code, ContentType, raw)
}

// NotFound writes a 404 OperationOutcome with the not-found issue code.
func NotFound(c echo.Context, diagnostics string) error {
	return JSON(c, http.StatusNotFound, NotFoundOutcome(diagnostics))
}
