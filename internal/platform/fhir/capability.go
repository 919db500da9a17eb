package fhir

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type capabilityInteraction struct {
	Code string `json:"code"`
}

type capabilityResource struct {
	Type        string                  `json:"type"`
	Interaction []capabilityInteraction `json:"interaction"`
}

type capabilityRest struct {
	Mode     string               `json:"mode"`
	Resource []capabilityResource `json:"resource"`
}

type capabilityStatement struct {
	ResourceType string           `json:"resourceType"`
	Status       string           `json:"status"`
	Date         string           `json:"date"`
	Kind         string           `json:"kind"`
	FhirVersion  string           `json:"fhirVersion"`
	Format       []string         `json:"format"`
	Rest         []capabilityRest `json:"rest"`
}

var capabilityTypes = []string{
	"Patient",
	"AllergyIntolerance",
	"Condition",
	"MedicationStatement",
	"Immunization",
	"Device",
	"Observation",
	"DiagnosticReport",
	"Composition",
	"DocumentReference",
}

// Capability serves the server CapabilityStatement for /fhir/metadata.
func Capability(c echo.Context) error {
	resources := make([]capabilityResource, 0, len(capabilityTypes))
	for _, t := range capabilityTypes {
		resources = append(resources, capabilityResource{
			Type: t,
			Interaction: []capabilityInteraction{
				{Code: "read"},
				{Code: "search-type"},
			},
		})
	}
	stmt := capabilityStatement{
		ResourceType: "CapabilityStatement",
		Status:       "active",
		Date:         time.Now().UTC().Format(time.RFC3339),
		Kind:         "instance",
		FhirVersion:  "4.0.1",
		Format:       []string{"application/fhir+json"},
		Rest:         []capabilityRest{{Mode: "server", Resource: resources}},
	}
	return JSON(c, http.StatusOK, stmt)
}
