// Package envelope implements the uniform KZR registry response wrapper and
// the request-validation rules shared by every /api/v1 endpoint.
package envelope

import (
	"net/http"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Stav values carried by the envelope.
const (
	StavOK       = "OK"
	StavCreated  = "CREATED"
	StavNotFound = "NOT_FOUND"
	StavChyba    = "CHYBA"
)

// SubStav values used with StavChyba.
const (
	SubStavValidace  = "Validace"
	SubStavGenerator = "Generator"
)

// Response is the uniform registry envelope.
type Response struct {
	ZadostID uuid.UUID   `json:"zadostId"`
	Stav     string      `json:"stav"`
	SubStav  string      `json:"subStav,omitempty"`
	Popis    string      `json:"popis,omitempty"`
	Zprava   string      `json:"zprava,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Chyby    []string    `json:"chyby,omitempty"`
}

// Dotaz is the common request-info block carried by every write body.
type Dotaz struct {
	Ucel  string     `json:"ucel,omitempty"`
	Datum *time.Time `json:"datum,omitempty"`
}

func OK(c echo.Context, zadostID uuid.UUID, popis string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{ZadostID: zadostID, Stav: StavOK, Popis: popis, Data: data})
}

func Created(c echo.Context, zadostID uuid.UUID, popis string, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{ZadostID: zadostID, Stav: StavCreated, Popis: popis, Data: data})
}

func NotFound(c echo.Context, zadostID uuid.UUID, zprava string) error {
	return c.JSON(http.StatusNotFound, Response{ZadostID: zadostID, Stav: StavNotFound, Zprava: zprava})
}

func Bad(c echo.Context, zadostID uuid.UUID, subStav string, chyby []string) error {
	return c.JSON(http.StatusBadRequest, Response{ZadostID: zadostID, Stav: StavChyba, SubStav: subStav, Chyby: chyby})
}

func ServerError(c echo.Context, zadostID uuid.UUID, subStav string, chyby []string) error {
	return c.JSON(http.StatusInternalServerError, Response{ZadostID: zadostID, Stav: StavChyba, SubStav: subStav, Chyby: chyby})
}

// ZadostID extracts the zadostId path parameter. An unparsable value yields
// uuid.Nil, which ValidateCommon then reports as missing.
func ZadostID(c echo.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("zadostId"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ValidateCommon checks the request fields every registry endpoint requires.
// datum accepts RFC 3339 or a plain calendar date.
func ValidateCommon(zadostID uuid.UUID, ucel, datum string) []string {
	var errs []string
	if zadostID == uuid.Nil {
		errs = append(errs, "zadostId je povinné.")
	}
	if isBlank(ucel) {
		errs = append(errs, "ucel je povinné.")
	}
	if isBlank(datum) {
		errs = append(errs, "datum je povinné.")
	} else if !parsableDate(datum) {
		errs = append(errs, "datum je neplatné.")
	}
	return errs
}

// ValidateInfo is ValidateCommon for body-borne requests, where ucel and datum
// arrive inside the zadostInfo block.
func ValidateInfo(zadostID uuid.UUID, info *Dotaz) []string {
	var errs []string
	if zadostID == uuid.Nil {
		errs = append(errs, "zadostId je povinné.")
	}
	if info == nil || isBlank(info.Ucel) {
		errs = append(errs, "ucel je povinné.")
	}
	if info == nil || info.Datum == nil {
		errs = append(errs, "datum je povinné.")
	}
	return errs
}

// ValidateICO checks the 8-digit organization registration number.
func ValidateICO(ico string) []string {
	if isBlank(ico) {
		return []string{"ico je povinné."}
	}
	if len(ico) != 8 || !allDigits(ico) {
		return []string{"ico musí mít přesně 8 číslic."}
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parsableDate(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	return false
}
