package risk

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/medilabo/medilabo/pkg/diabetesrisk"
)

var validate = validator.New()

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/diabetes-risk", h.GetPatientRisk)
	api.POST("/diabetes-risk/$evaluate", h.EvaluateBatch)
}

// RegisterLegacyRoutes mounts the plain-text endpoint the front-end polls.
func (h *Handler) RegisterLegacyRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.GET("/alerte/detecte", h.DetectAlert, m...)
}

// AssessmentResponse is the JSON rendering of a risk assessment.
type AssessmentResponse struct {
	PatientID     string    `json:"patient_id"`
	Risk          string    `json:"risk"`
	Label         string    `json:"label"`
	EvidenceCount int       `json:"evidence_count"`
	Age           *int      `json:"age,omitempty"`
	Sex           string    `json:"sex,omitempty"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

func NewAssessmentResponse(a diabetesrisk.Assessment) AssessmentResponse {
	resp := AssessmentResponse{
		PatientID:     a.PatientID,
		Risk:          a.Tier.Code(),
		Label:         a.Tier.String(),
		EvidenceCount: a.Evidence,
		EvaluatedAt:   a.EvaluatedAt,
	}
	if a.Tier != diabetesrisk.TierPatientNotFound {
		age := a.Age
		resp.Age = &age
		resp.Sex = a.Sex.String()
	}
	return resp
}

// BatchRequest is the body of POST /diabetes-risk/$evaluate.
type BatchRequest struct {
	PatientIDs []string `json:"patient_ids" validate:"required,min=1,max=100,dive,required"`
}

type BatchResponse struct {
	Results []AssessmentResponse `json:"results"`
	Total   int                  `json:"total"`
}

func (h *Handler) GetPatientRisk(c echo.Context) error {
	a, err := h.svc.Evaluate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return evaluationError(err)
	}
	status := http.StatusOK
	if a.Tier == diabetesrisk.TierPatientNotFound {
		status = http.StatusNotFound
	}
	return c.JSON(status, NewAssessmentResponse(a))
}

func (h *Handler) EvaluateBatch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	assessments, err := h.svc.EvaluateBatch(c.Request().Context(), req.PatientIDs)
	if err != nil {
		return evaluationError(err)
	}
	resp := BatchResponse{Results: make([]AssessmentResponse, 0, len(assessments)), Total: len(assessments)}
	for _, a := range assessments {
		resp.Results = append(resp.Results, NewAssessmentResponse(a))
	}
	return c.JSON(http.StatusOK, resp)
}

// DetectAlert handles GET /alerte/detecte?patientId= and answers with the
// bare tier label as text/plain.
func (h *Handler) DetectAlert(c echo.Context) error {
	patientID := c.QueryParam("patientId")
	if patientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId is required")
	}
	a, err := h.svc.Evaluate(c.Request().Context(), patientID)
	if err != nil {
		return evaluationError(err)
	}
	return c.String(http.StatusOK, a.Tier.String())
}

func evaluationError(err error) error {
	switch {
	case errors.Is(err, diabetesrisk.ErrMissingBirthDate):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadGateway, err.Error())
}
