package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/pkg/dateonly"
	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the KRPZS and KRZP route groups.
func (h *Handler) RegisterRoutes(krpzs, krzp *echo.Group) {
	krpzs.GET("/hledat/:zadostId/ico", h.FindProviderByICO)
	krpzs.POST("/reklamace/:zadostId", h.ProviderReklamace)

	krzp.GET("/hledat/:zadostId/krzpid", h.FindWorkerByID)
	krzp.GET("/hledat/:zadostId/jmeno_prijmeni_datum_narozeni", h.FindWorkerByPerson)
	krzp.GET("/hledat/:zadostId/zamestnavatel", h.FindWorkersByEmployer)
	krzp.POST("/reklamace/:zadostId", h.WorkerReklamace)
}

func (h *Handler) FindProviderByICO(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	ico := c.QueryParam("ico")
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	errs = append(errs, envelope.ValidateICO(ico)...)
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	p, ok := h.store.ProviderByICO(ico)
	if !ok {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Poskytovatel s IČO %s nenalezen.", ico))
	}
	return envelope.OK(c, zadostID, "KRPZS GET ICO", p)
}

func (h *Handler) FindWorkerByID(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil || id <= 0 {
		errs = append(errs, "Parametr id musí být kladné číslo.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	w, ok := h.store.WorkerByID(id)
	if !ok {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Pracovník s KRZP ID %d nenalezen.", id))
	}
	return envelope.OK(c, zadostID, "KRZP VyhledejPodleKRZPID", w)
}

func (h *Handler) FindWorkerByPerson(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	jmeno := c.QueryParam("jmeno")
	prijmeni := c.QueryParam("prijmeni")
	if strings.TrimSpace(jmeno) == "" {
		errs = append(errs, "jmeno je povinné.")
	}
	if strings.TrimSpace(prijmeni) == "" {
		errs = append(errs, "prijmeni je povinné.")
	}
	narozeni, err := dateonly.Parse(c.QueryParam("datumNarozeni"))
	if err != nil {
		errs = append(errs, "datumNarozeni je neplatné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	res := h.store.WorkersByPerson(jmeno, prijmeni, narozeni)
	if len(res) == 0 {
		return envelope.NotFound(c, zadostID, "Pracovník nenalezen.")
	}
	return envelope.OK(c, zadostID, "KRZP VyhledejPodleJmenoPrijmeniDatumNarozeni", res)
}

func (h *Handler) FindWorkersByEmployer(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	ico := c.QueryParam("ico")
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	errs = append(errs, envelope.ValidateICO(ico)...)
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	res := h.store.WorkersByEmployer(ico)
	if len(res) == 0 {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Žádní pracovníci pro IČO %s.", ico))
	}
	return envelope.OK(c, zadostID, "KRZP VyhledejPodleZamestnavatele", res)
}

// ProviderReklamace requires at least one disputed item; the worker variant
// accepts an empty item list.
func (h *Handler) ProviderReklamace(c echo.Context) error {
	return h.acceptReklamace(c, "KRPZS", true)
}

func (h *Handler) WorkerReklamace(c echo.Context) error {
	return h.acceptReklamace(c, "KRZP", false)
}

func (h *Handler) acceptReklamace(c echo.Context, registr string, requireItems bool) error {
	zadostID := envelope.ZadostID(c)
	var body reklamaceBody
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else if requireItems && len(body.ZadostData.PolozkyReklamace) == 0 {
		errs = append(errs, "PolozkyReklamace musí obsahovat alespoň jednu položku.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	return envelope.Created(c, zadostID, "Reklamace přijata", map[string]interface{}{
		"prijato": true,
		"registr": registr,
	})
}
