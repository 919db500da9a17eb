package fhir

import "strings"

// MapGender converts the registry gender code to the FHIR administrative
// gender vocabulary.
func MapGender(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "M":
		return "male"
	case "Z":
		return "female"
	default:
		return "unknown"
	}
}

// MapCodeSystem resolves a registry code-system label to its canonical URI.
// Unknown labels map to the empty string and the caller leaves the coding
// system out.
func MapCodeSystem(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "ICD-10", "MKN-10":
		return SystemICD10
	case "SNOMED", "SNOMED-CT", "SNOMED CT":
		return SystemSNOMED
	case "LOINC":
		return SystemLOINC
	default:
		return ""
	}
}

// MapCriticality keeps only values from the allergy criticality value set.
func MapCriticality(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return "low"
	case "high":
		return "high"
	case "unable-to-assess":
		return "unable-to-assess"
	default:
		return ""
	}
}

// ConceptFor builds a CodeableConcept from a registry code triple. When the
// system label is unknown the coding carries only code and display.
func ConceptFor(systemLabel, code, display string) CodeableConcept {
	cc := CodeableConcept{Text: display}
	if code == "" && display == "" {
		return cc
	}
	cc.Coding = []Coding{{System: MapCodeSystem(systemLabel), Code: code, Display: display}}
	return cc
}
