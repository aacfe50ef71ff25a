package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type AttendanceHandler struct {
	db *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db}
}

type CreateAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	Notes      string `json:"notes"`
}

func (h *AttendanceHandler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Kind != models.AttendanceCheckIn && req.Kind != models.AttendanceCheckOut {
		httperr.BadRequest(c, "invalid_kind", "El tipo debe ser 'check_in' o 'check_out'.")
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_register_attendance", "Error del servidor al registrar la asistencia.")
		return
	}
	if !employee.Active {
		httperr.Conflict(c, "employee_inactive", "El empleado no está activo.")
		return
	}

	// A check-out only makes sense after an open check-in; likewise a new
	// check-in needs the previous one closed.
	var last models.AttendanceRecord
	err := h.db.
		Where("employee_id = ?", req.EmployeeID).
		Order("created_at DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "failed_to_register_attendance", "Error del servidor al registrar la asistencia.")
		return
	}
	if err == nil && last.Kind == req.Kind {
		if req.Kind == models.AttendanceCheckIn {
			httperr.Conflict(c, "already_checked_in", "El empleado ya registró su ingreso.")
		} else {
			httperr.Conflict(c, "already_checked_out", "El empleado ya registró su salida.")
		}
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && req.Kind == models.AttendanceCheckOut {
		httperr.Conflict(c, "check_in_required", "Se requiere un ingreso antes de registrar la salida.")
		return
	}

	record := models.AttendanceRecord{
		EmployeeID: req.EmployeeID,
		Kind:       req.Kind,
		Notes:      req.Notes,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_register_attendance", "Error del servidor al registrar la asistencia.")
		return
	}

	c.JSON(201, record)
}

func (h *AttendanceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AttendanceRecord{}).Preload("Employee.User")

	if employee := strings.TrimSpace(c.Query("employee_id")); employee != "" {
		q = q.Where("employee_id = ?", employee)
	}

	if from := strings.TrimSpace(c.Query("from")); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "La fecha debe estar en formato YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at >= ?", parsed)
	}

	if to := strings.TrimSpace(c.Query("to")); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "La fecha debe estar en formato YYYY-MM-DD.")
			return
		}
		q = q.Where("created_at < ?", parsed.AddDate(0, 0, 1))
	}

	var records []models.AttendanceRecord
	if err := q.
		Order("created_at DESC").
		Find(&records).Error; err != nil {

		httperr.Internal(c, "failed_to_list_attendance", "Error del servidor al obtener las asistencias.")
		return
	}

	httpresp.List(c, records)
}
