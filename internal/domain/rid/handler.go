package rid

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts the identifier endpoints on the /krp group. Patient
// registration lives in the patient package and shares the same group.
func (h *Handler) RegisterRoutes(krp *echo.Group) {
	krp.POST("/rid/generate/:zadostId", h.GenerateRid)
	krp.POST("/drid/generate/:zadostId", h.GenerateDrid)
	krp.GET("/rid/:zadostId", h.GetRid)
	krp.GET("/drid/:zadostId", h.GetDrid)
}

func (h *Handler) GenerateRid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))

	givenName := c.QueryParam("givenName")
	familyName := c.QueryParam("familyName")
	if givenName == "" {
		errs = append(errs, "givenName je povinné.")
	}
	if familyName == "" {
		errs = append(errs, "familyName je povinné.")
	}
	dob, dobErr := dateonly.Parse(c.QueryParam("dateOfBirth"))
	if dobErr != nil {
		errs = append(errs, "dateOfBirth je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	rec, err := h.registry.GeneratePermanent(givenName, familyName, dob)
	if err != nil {
		return envelope.ServerError(c, zadostID, envelope.SubStavGenerator, []string{err.Error()})
	}
	return envelope.OK(c, zadostID, "RID vygenerován", map[string]string{"rid": rec.Rid})
}

func (h *Handler) GenerateDrid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	rec, err := h.registry.GenerateTemporary()
	if err != nil {
		return envelope.ServerError(c, zadostID, envelope.SubStavGenerator, []string{err.Error()})
	}
	return envelope.OK(c, zadostID, "DRID vygenerován", map[string]string{"drid": rec.Rid})
}

func (h *Handler) GetRid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	rid := c.QueryParam("rid")
	if rid == "" {
		errs = append(errs, "rid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	rec, ok := h.registry.Find(rid)
	if !ok {
		return envelope.NotFound(c, zadostID, "RID nenalezen.")
	}
	return envelope.OK(c, zadostID, "KRP RID", rec)
}

func (h *Handler) GetDrid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	drid := c.QueryParam("drid")
	if drid == "" {
		errs = append(errs, "drid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	rec, ok := h.registry.Find(drid)
	if !ok {
		return envelope.NotFound(c, zadostID, "DRID nenalezen.")
	}
	return envelope.OK(c, zadostID, "KRP DRID", rec)
}

// IsValidationErr reports whether a registration failure should surface as
// a validation error rather than a generator fault.
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrRidTaken) || errors.Is(err, ErrDridInvalid)
}
