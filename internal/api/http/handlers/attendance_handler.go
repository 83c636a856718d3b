package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-lite/internal/api/dto"
	"github.com/spec-kit/hrms-lite/internal/domain"
	"github.com/spec-kit/hrms-lite/internal/service"
	"github.com/spec-kit/hrms-lite/internal/validation"
	apperrors "github.com/spec-kit/hrms-lite/pkg/util"
)

// AttendanceHandler manages attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: attendanceService}
}

// Mark POST /attendance.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("Invalid request payload", nil)
	}
	if err := validation.AttendanceCreate(&req); err != nil {
		return err
	}

	rec, err := h.service.Mark(c.UserContext(), service.MarkAttendanceInput{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     domain.AttendanceStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAttendanceResponse(rec))
}

// List GET /attendance.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	filter := service.AttendanceListFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	records, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(attendanceResponses(records))
}

// ListForEmployee GET /attendance/employee/:id.
func (h *AttendanceHandler) ListForEmployee(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	var startDate, endDate *string
	if v := c.Query("start_date"); v != "" {
		if err := validation.DateParam("start_date", v); err != nil {
			return err
		}
		startDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		if err := validation.DateParam("end_date", v); err != nil {
			return err
		}
		endDate = &v
	}

	records, err := h.service.ListForEmployee(c.UserContext(), c.Params("id"), skip, limit, startDate, endDate)
	if err != nil {
		return err
	}
	return c.JSON(attendanceResponses(records))
}

// GetRecord GET /attendance/record/:id.
func (h *AttendanceHandler) GetRecord(c *fiber.Ctx) error {
	rec, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttendanceResponse(rec))
}

// UpdateRecord PUT /attendance/record/:id.
func (h *AttendanceHandler) UpdateRecord(c *fiber.Ctx) error {
	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("Invalid request payload", nil)
	}
	if err := validation.AttendanceStatus(req.Status); err != nil {
		return err
	}

	rec, err := h.service.Update(c.UserContext(), c.Params("id"), domain.AttendanceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttendanceResponse(rec))
}

// DeleteRecord DELETE /attendance/record/:id.
func (h *AttendanceHandler) DeleteRecord(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Summary GET /attendance/summary/:id.
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func attendanceResponses(records []domain.AttendanceRecord) []dto.AttendanceResponse {
	items := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAttendanceResponse(&records[i]))
	}
	return items
}
