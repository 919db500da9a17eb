package imaging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ezkzr/kzr-mock-server/pkg/envelope"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(mi *echo.Group) {
	mi.GET("/rid/:zadostId", h.GetByRid)
	mi.POST("/report/:zadostId", h.CreateReport)
	mi.POST("/order/:zadostId", h.CreateOrder)
	mi.GET("/order/:zadostId", h.GetOrder)
}

func (h *Handler) GetByRid(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	patientRid := c.QueryParam("rid")
	if patientRid == "" {
		errs = append(errs, "rid je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	reps := h.store.ReportsByRid(patientRid)
	if len(reps) == 0 {
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Zpráva z obrazového vyšetření pro RID %s nenalezena.", patientRid))
	}
	return envelope.OK(c, zadostID, "MI Report", reps)
}

type createReportRequest struct {
	ZadostInfo *envelope.Dotaz `json:"zadostInfo"`
	ZadostData *Report         `json:"zadostData"`
}

func (h *Handler) CreateReport(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	var body createReportRequest
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else {
		if strings.TrimSpace(body.ZadostData.Header.Rid) == "" {
			errs = append(errs, "Header.Rid je povinné.")
		}
		if strings.TrimSpace(body.ZadostData.Findings) == "" {
			errs = append(errs, "Findings je povinné.")
		}
		if strings.TrimSpace(body.ZadostData.Conclusion) == "" {
			errs = append(errs, "Conclusion je povinné.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	h.store.AddReport(*body.ZadostData)
	return envelope.Created(c, zadostID, "ImagingReport přijata", map[string]interface{}{
		"prijato": true,
		"registr": "MI",
	})
}

type createOrderRequest struct {
	ZadostInfo *envelope.Dotaz `json:"zadostInfo"`
	ZadostData *Order          `json:"zadostData"`
}

func (h *Handler) CreateOrder(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	var body createOrderRequest
	if err := c.Bind(&body); err != nil {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, []string{"tělo požadavku je neplatné."})
	}

	errs := envelope.ValidateInfo(zadostID, body.ZadostInfo)
	if body.ZadostData == nil {
		errs = append(errs, "ZadostData je povinné.")
	} else {
		if strings.TrimSpace(body.ZadostData.Rid) == "" {
			errs = append(errs, "Rid je povinné.")
		}
		if strings.TrimSpace(body.ZadostData.RequestedModality) == "" {
			errs = append(errs, "RequestedModality je povinné.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	order := h.store.AddOrder(*body.ZadostData)
	return envelope.Created(c, zadostID, "ImagingOrder přijata", order)
}

func (h *Handler) GetOrder(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	id, idErr := uuid.Parse(c.QueryParam("id"))
	if idErr != nil {
		errs = append(errs, "id je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	order, ok := h.store.OrderByID(id)
	if !ok {
		return envelope.NotFound(c, zadostID, "Obrazová žádanka nenalezena.")
	}
	return envelope.OK(c, zadostID, "ImagingOrder", order)
}
