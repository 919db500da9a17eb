// Package registry covers the provider (KRPZS) and health-worker (KRZP)
// registries: lookups, reklamace intake and the shared notification routes.
package registry

import (
	"time"

	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

// Provider is a healthcare-provider organization record.
type Provider struct {
	Ico   string `json:"ico"`
	Nazev string `json:"nazev"`
}

// Worker is a registered health worker.
type Worker struct {
	KrzpId           int64         `json:"krzpId"`
	Jmeno            string        `json:"jmeno"`
	Prijmeni         string        `json:"prijmeni"`
	DatumNarozeni    dateonly.Date `json:"datumNarozeni"`
	ZamestnavatelIco string        `json:"zamestnavatelIco"`
}

// Reklamujici identifies who files a reklamace.
type Reklamujici struct {
	Ico          string `json:"ico,omitempty"`
	Nazev        string `json:"nazev,omitempty"`
	KontaktEmail string `json:"kontaktEmail,omitempty"`
}

// ReklamaceItem is one disputed field of a registry record.
type ReklamaceItem struct {
	Klic              string `json:"klic,omitempty"`
	PuvodniHodnota    string `json:"puvodniHodnota,omitempty"`
	PozadovanaHodnota string `json:"pozadovanaHodnota,omitempty"`
}

// ReklamaceBulk carries one reklamace submission.
type ReklamaceBulk struct {
	Krpzsid          int64           `json:"krpzsid,omitempty"`
	UlozkaId         string          `json:"ulozkaId,omitempty"`
	UlozkaRef        *int            `json:"ulozkaRef,omitempty"`
	DatumReklamace   time.Time       `json:"datumReklamace"`
	Reklamujici      *Reklamujici    `json:"reklamujici,omitempty"`
	PolozkyReklamace []ReklamaceItem `json:"polozkyReklamace,omitempty"`
	Zduvodneni       string          `json:"zduvodneni,omitempty"`
	PopisReklamace   string          `json:"popisReklamace,omitempty"`
}

type reklamaceBody struct {
	ZadostInfo *envelope.Dotaz `json:"zadostInfo"`
	ZadostData *ReklamaceBulk  `json:"zadostData"`
}
