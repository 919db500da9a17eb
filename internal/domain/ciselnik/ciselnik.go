// Package ciselnik serves the static code lists under /api/v1/ciselnik.
package ciselnik

import (
	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

// Item is one entry of a code list.
type Item struct {
	Kod   string `json:"kod"`
	Popis string `json:"popis"`
}

type list struct {
	popis string
	items []Item
}

var lists = map[string]list{
	"stat": {"CiselnikStat", []Item{
		{"CZ", "Česká republika"},
		{"SK", "Slovensko"},
		{"DE", "Německo"},
	}},
	"pohlavi": {"CiselnikPohlavi", []Item{
		{"M", "Muž"},
		{"Z", "Žena"},
		{"X", "Neurčeno"},
	}},
	"zdravotni_pojistovna": {"CiselnikZdravotniPojistovna", []Item{
		{"111", "VZP"},
		{"201", "VoZP"},
		{"205", "ČPZP"},
		{"207", "OZP"},
		{"209", "ZPŠ"},
		{"211", "ZPMV"},
	}},
	"druh_dokladu": {"CiselnikDruhDokladu", []Item{
		{"P", "Cestovní pas"},
		{"OP", "Občanský průkaz"},
		{"RP", "Povolení k pobytu"},
	}},
	"modality": {"CiselnikModality", []Item{
		{"XR", "Rentgen"},
		{"CT", "CT"},
		{"MR", "MRI"},
		{"US", "Ultrazvuk"},
		{"NM", "Nukleární medicína"},
		{"PET", "PET"},
		{"MG", "Mamografie"},
		{"DX", "Skiagrafie"},
	}},
	"laboratorni_test": {"CiselnikLaboratorniTest", []Item{
		{"718-7", "Hemoglobin"},
		{"2339-0", "Glukóza"},
		{"4548-4", "HbA1c"},
		{"2951-2", "Sodík"},
		{"14682-9", "CRP"},
	}},
	"order_status": {"CiselnikOrderStatus", []Item{
		{"new", "Nová"},
		{"received", "Přijata"},
		{"in-progress", "Zpracovává se"},
		{"completed", "Dokončena"},
		{"cancelled", "Zrušena"},
	}},
	"ems_outcome": {"CiselnikEmsOutcome", []Item{
		{"transport", "Převoz"},
		{"treat-on-scene", "Ošetření na místě"},
		{"refused-care", "Odmítnutí péče"},
		{"death-on-scene", "Úmrtí na místě"},
	}},
	"odbornost": {"CiselnikOdbornost", []Item{
		{"101", "Všeobecný praktický lékař"},
		{"202", "Vnitřní lékařství"},
		{"501", "Radiologie"},
		{"705", "Kardiologie"},
		{"302", "Chirurgie"},
	}},
}

// RegisterRoutes mounts GET /ciselnik/:zadostId/:list.
func RegisterRoutes(api *echo.Group) {
	api.GET("/ciselnik/:zadostId/:list", Get)
}

func Get(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	if errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum")); len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}
	l, ok := lists[c.Param("list")]
	if !ok {
		return envelope.NotFound(c, zadostID, "Číselník nenalezen.")
	}
	return envelope.OK(c, zadostID, l.popis, l.items)
}
