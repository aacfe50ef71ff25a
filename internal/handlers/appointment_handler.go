package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	ucAppointment "github.com/AgendaEstetica/salon-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	updateUC     *ucAppointment.UpdateAppointment
	cancelUC     *ucAppointment.CancelAppointment
	deleteUC     *ucAppointment.DeleteAppointment
	getUC        *ucAppointment.GetAppointment
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		updateUC:     updateUC,
		cancelUC:     cancelUC,
		deleteUC:     deleteUC,
		getUC:        getUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:MM[:SS]
	Notes      string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	NewDate         string   `json:"new_date" binding:"required"`
	NewTime         string   `json:"new_time" binding:"required"`
	ExtraCost       *float64 `json:"extra_cost"`
	ExtraCostReason *string  `json:"extra_cost_reason"`
}

// UpdateAppointmentRequest keeps extra_cost_reason as raw JSON so an
// explicit null (clear the reason) stays distinguishable from an absent key.
type UpdateAppointmentRequest struct {
	Status          *string         `json:"status"`
	ExtraCost       *float64        `json:"extra_cost"`
	ExtraCostReason json.RawMessage `json:"extra_cost_reason"`
	Date            *string         `json:"date"`
	Time            *string         `json:"time"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Error del servidor al registrar el turno.")
		return
	}

	c.JSON(201, gin.H{
		"message":        "Turno registrado y cobro inicial creado con éxito.",
		"appointment_id": ap.ID,
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ID:              id,
		NewDate:         req.NewDate,
		NewTime:         req.NewTime,
		ExtraCost:       req.ExtraCost,
		ExtraCostReason: req.ExtraCostReason,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_reschedule", "Error del servidor al reprogramar el turno.")
		return
	}

	c.JSON(200, gin.H{
		"message":     "Turno reprogramado con éxito.",
		"appointment": ap,
	})
}

// ======================================================
// PARTIAL UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		ID:        id,
		Status:    req.Status,
		ExtraCost: req.ExtraCost,
		Date:      req.Date,
		Time:      req.Time,
	}

	if len(req.ExtraCostReason) > 0 {
		if string(req.ExtraCostReason) == "null" {
			in.ClearExtraCostReason = true
		} else {
			var reason string
			if err := json.Unmarshal(req.ExtraCostReason, &reason); err != nil {
				httperr.BadRequest(c, "invalid_request", "El motivo extra debe ser texto.")
				return
			}
			in.ExtraCostReason = &reason
		}
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update", "Error del servidor al actualizar el turno.")
		return
	}

	c.JSON(200, gin.H{
		"message":     "Turno actualizado correctamente.",
		"appointment": ap,
	})
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Error del servidor al cancelar el turno.")
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Error del servidor al obtener el turno.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.AppointmentFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}

	if v := c.Query("client_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "ID de cliente inválido.")
			return
		}
		filter.ClientID = uint(n)
	}
	if v := c.Query("employee_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "ID de empleado inválido.")
			return
		}
		filter.EmployeeID = uint(n)
	}

	list, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error del servidor al obtener los turnos.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_delete", "Error del servidor al eliminar el turno.")
		return
	}

	c.JSON(200, gin.H{"message": "Turno eliminado correctamente."})
}
