package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/api/dto"
	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/service"
	"github.com/spec-kit/hr-portal/internal/validator"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

// OrgChartHandler serves the organization chart and the employee directory.
type OrgChartHandler struct {
	chart     *service.OrgChartService
	validator *validator.Validator
}

// NewOrgChartHandler constructs handler.
func NewOrgChartHandler(chart *service.OrgChartService, v *validator.Validator) *OrgChartHandler {
	return &OrgChartHandler{chart: chart, validator: v}
}

// Data handles GET /organigramme/data.
func (h *OrgChartHandler) Data(c *fiber.Ctx) error {
	forest, err := h.chart.Chart(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employees": chartNodes(forest.Roots)})
}

// Add handles POST /organigramme/add.
func (h *OrgChartHandler) Add(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	view, err := h.chart.AddEmployee(c.UserContext(), actor(c), service.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		SuperiorID: deref(req.SuperiorID),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "employee": viewResponse(*view)})
}

// Update handles PUT /organigramme/:id.
func (h *OrgChartHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if nulls := req.NullRequiredFields(); len(nulls) > 0 {
		details := make(map[string]any, len(nulls))
		for _, f := range nulls {
			details[f] = "required"
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	if err := h.validator.Validate(req.Check()); err != nil {
		return err
	}

	view, err := h.chart.UpdateEmployee(c.UserContext(), actor(c), c.Params("id"), service.EmployeePatch{
		FirstName:  req.FirstName.Ptr(),
		LastName:   req.LastName.Ptr(),
		Email:      req.Email.Ptr(),
		Phone:      clearable(req.Phone),
		Position:   clearable(req.Position),
		Department: clearable(req.Department),
		SuperiorID: clearable(req.SuperiorID),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "employee": viewResponse(*view)})
}

// Delete handles DELETE /organigramme/:id.
func (h *OrgChartHandler) Delete(c *fiber.Ctx) error {
	if err := h.chart.DeleteEmployee(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// SupervisorCandidates handles GET /organigramme/:id/supervisor-candidates.
func (h *OrgChartHandler) SupervisorCandidates(c *fiber.Ctx) error {
	views, err := h.chart.SupervisorCandidates(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	out := make([]dto.ChartNodeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, viewResponse(v))
	}
	return c.JSON(fiber.Map{"candidates": out})
}

// ListEmployees handles GET /employees.
func (h *OrgChartHandler) ListEmployees(c *fiber.Ctx) error {
	list, err := h.chart.ListEmployees(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, employeeResponse(e))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetEmployee handles GET /employees/:id.
func (h *OrgChartHandler) GetEmployee(c *fiber.Ctx) error {
	employee, err := h.chart.GetEmployee(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(*employee)})
}

func actor(c *fiber.Ctx) *domain.Employee {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Employee
	}
	return nil
}

// clearable maps an explicit null to the empty string, which clears the field.
func clearable(f dto.Field[string]) *string {
	if !f.Set {
		return nil
	}
	if f.Null {
		empty := ""
		return &empty
	}
	v := f.Value
	return &v
}
