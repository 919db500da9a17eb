package lab

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

func (h *Handler) RegisterRoutes(lab *echo.Group) {
	lab.GET("/rid/:zadostId", h.GetByRid)
	lab.POST("/report/:zadostId", h.CreateReport)
	lab.POST("/order/:zadostId", h.CreateOrder)
	lab.GET("/order/:zadostId", h.GetOrder)
	lab.GET("/result_by_order/:zadostId", h.GetResultsByOrder)
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
		return envelope.NotFound(c, zadostID, fmt.Sprintf("Lab výsledky pro RID %s nenalezeny.", patientRid))
	}
	return envelope.OK(c, zadostID, "LAB Report", reps)
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
		if len(body.ZadostData.Results) == 0 {
			errs = append(errs, "Results musí obsahovat alespoň jednu položku.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	h.store.AddReport(*body.ZadostData)
	return envelope.Created(c, zadostID, "LabReport přijata", map[string]interface{}{
		"prijato": true,
		"registr": "LAB",
		"orderId": body.ZadostData.Header.OrderID,
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
		if len(body.ZadostData.Tests) == 0 {
			errs = append(errs, "Tests musí obsahovat alespoň jednu položku.")
		}
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	order := h.store.AddOrder(*body.ZadostData)
	return envelope.Created(c, zadostID, "LabOrder přijata", order)
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
		return envelope.NotFound(c, zadostID, "Laboratorní žádanka nenalezena.")
	}
	return envelope.OK(c, zadostID, "LabOrder", order)
}

func (h *Handler) GetResultsByOrder(c echo.Context) error {
	zadostID := envelope.ZadostID(c)
	errs := envelope.ValidateCommon(zadostID, c.QueryParam("ucel"), c.QueryParam("datum"))
	id, idErr := uuid.Parse(c.QueryParam("id"))
	if idErr != nil {
		errs = append(errs, "id je povinné.")
	}
	if len(errs) > 0 {
		return envelope.Bad(c, zadostID, envelope.SubStavValidace, errs)
	}

	reps := h.store.ReportsByOrder(id)
	if len(reps) == 0 {
		return envelope.NotFound(c, zadostID, "Žádné výsledky pro zadanou žádanku.")
	}
	return envelope.OK(c, zadostID, "LAB", reps)
}
