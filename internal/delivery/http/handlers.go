package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/internal/report"
	"github.com/alibaba1709/SIH-25069/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	assessments *service.AssessmentService
	calculator  *service.CalculatorService
	materials   *service.MaterialService
	mlBridge    *service.MLBridge
	log         *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(
	assessments *service.AssessmentService,
	calculator *service.CalculatorService,
	materials *service.MaterialService,
	mlBridge *service.MLBridge,
	log *logger.Logger,
) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		assessments: assessments,
		calculator:  calculator,
		materials:   materials,
		mlBridge:    mlBridge,
		log:         log,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := func(err error) string {
		if err != nil {
			return err.Error()
		}
		return "ok"
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"service":    "mci-backend",
		"version":    "1.0.0",
		"engine":     fiber.Map{"ready": true, "rows": h.assessments.Engine().Rows()},
		"database":   status(h.assessments.StorageHealth(ctx)),
		"ml_service": status(h.mlBridge.Health(ctx)),
	})
}

// GetSchema describes the feature columns so dashboards can build input forms
func (h *Handler) GetSchema(c *fiber.Ctx) error {
	engine := h.assessments.Engine()
	fill := engine.FillValues()

	type field struct {
		Name       string      `json:"name"`
		Kind       domain.Kind `json:"kind"`
		Default    any         `json:"default"`
		Categories []string    `json:"categories,omitempty"`
	}
	fields := make([]field, 0, engine.Schema().Len())
	for _, f := range engine.Schema().Fields() {
		out := field{Name: f.Name, Kind: f.Kind, Default: fill[f.Name]}
		if f.Kind == domain.KindCategorical {
			out.Categories = engine.Categories(f.Name)
		}
		fields = append(fields, out)
	}

	cfg := engine.Config()
	return c.JSON(fiber.Map{
		"success":     true,
		"fields":      fields,
		"beneficial":  cfg.Beneficial,
		"detrimental": cfg.Detrimental,
	})
}

// GetClusters returns the peer cluster benchmarks and clustering diagnostics
func (h *Handler) GetClusters(c *fiber.Ctx) error {
	engine := h.assessments.Engine()
	return c.JSON(fiber.Map{
		"success":     true,
		"clusters":    engine.Clusters(),
		"diagnostics": engine.Diagnostics(),
	})
}

// Analyze runs the benchmark engine on a JSON object of feature values
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.assessments.Analyze(fields)
	if err != nil {
		h.log.Error("analysis failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to analyze input")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// Assess analyzes an input for one or more metals and stores the results
func (h *Handler) Assess(c *fiber.Ctx) error {
	assessments, err := h.assess(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    assessments,
		"count":   len(assessments),
	})
}

func (h *Handler) assess(c *fiber.Ctx) ([]domain.Assessment, error) {
	var req domain.AssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Fields == nil {
		req.Fields = map[string]any{}
	}

	assessments, err := h.assessments.Assess(c.Context(), req)
	if err != nil {
		h.log.Error("assessment failed", "error", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to assess input")
	}
	return assessments, nil
}

// GetAssessments returns assessment history within a time range
func (h *Handler) GetAssessments(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	data, err := h.assessments.GetHistory(c.Context(), hours)
	if err != nil {
		h.log.Error("history query failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch assessment history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// Predict asks the model service for an MCI estimate of an input
func (h *Handler) Predict(c *fiber.Ctx) error {
	var req domain.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	row, warnings := h.assessments.Engine().Align(req.Features)
	prediction, err := h.mlBridge.Predict(c.Context(), row, req.Metal)
	if err != nil {
		h.log.Error("prediction failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get prediction")
	}

	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"data":     prediction,
		"drivers":  service.DriverRecommendations(prediction.Contributions),
		"warnings": warnings,
	})
}

// Calculate runs the quick weighted calculator
func (h *Handler) Calculate(c *fiber.Ctx) error {
	req := domain.DefaultCalculationRequest()
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.calculator.Calculate(req)
	if errors.Is(err, service.ErrMissingField) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Calculation failed")
	}

	h.log.Debug("calculation completed", "material", result.Material, "mci", result.MCIScore)
	return c.JSON(fiber.Map{
		"success": true,
		"results": result,
	})
}

// GetMaterials returns the metal catalogue
func (h *Handler) GetMaterials(c *fiber.Ctx) error {
	return c.JSON(h.materials.List())
}

// Export assesses the posted input and returns it as a CSV, XLSX or PNG download
func (h *Handler) Export(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Query("format", string(report.FormatCSV)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "format must be csv, xlsx or png")
	}

	assessments, err := h.assess(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, assessments); err != nil {
		h.log.Error("export failed", "format", format, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render export")
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.Filename()))
	return c.Send(buf.Bytes())
}
