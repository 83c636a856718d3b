package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-lite/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Employees  *handlers.EmployeesHandler
	Attendance *handlers.AttendanceHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	employees := app.Group("/employees")
	employees.Post("", cfg.Employees.Create)
	employees.Get("", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	attendance := app.Group("/attendance")
	attendance.Post("", cfg.Attendance.Mark)
	attendance.Get("", cfg.Attendance.List)
	attendance.Get("/employee/:id", cfg.Attendance.ListForEmployee)
	attendance.Get("/record/:id", cfg.Attendance.GetRecord)
	attendance.Put("/record/:id", cfg.Attendance.UpdateRecord)
	attendance.Delete("/record/:id", cfg.Attendance.DeleteRecord)
	attendance.Get("/summary/:id", cfg.Attendance.Summary)
}
