package fhir

// BundleEntry wraps one resource inside a bundle.
type BundleEntry struct {
	Resource interface{} `json:"resource"`
}

// Bundle is the wire shape for searchset, collection and document bundles.
// Total is present on searchset and collection bundles, Timestamp only on
// document bundles.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Timestamp    string        `json:"timestamp,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry"`
}

func entries(resources []interface{}) []BundleEntry {
	out := make([]BundleEntry, 0, len(resources))
	for _, r := range resources {
		out = append(out, BundleEntry{Resource: r})
	}
	return out
}

// NewSearchset builds a searchset bundle with total set to the entry count.
func NewSearchset(resources []interface{}) Bundle {
	n := len(resources)
	return Bundle{
		ResourceType: "Bundle",
		Type:         "searchset",
		Total:        &n,
		Entry:        entries(resources),
	}
}

// NewCollection builds a collection bundle with total set to the entry count.
func NewCollection(resources []interface{}) Bundle {
	n := len(resources)
	return Bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Total:        &n,
		Entry:        entries(resources),
	}
}

// NewDocument builds a document bundle. Document bundles carry a timestamp
// instead of a total.
func NewDocument(timestamp string, resources []interface{}) Bundle {
	return Bundle{
		ResourceType: "Bundle",
		Type:         "document",
		Timestamp:    timestamp,
		Entry:        entries(resources),
	}
}
