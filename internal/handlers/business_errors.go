package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
)

// Business codes raised by the use cases, grouped by the HTTP outcome they
// map to. Anything unknown falls through to a 500.
var notFoundCodes = map[string]string{
	"client_not_found":      "Cliente no encontrado.",
	"employee_not_found":    "Empleado no encontrado.",
	"service_not_found":     "Servicio no encontrado.",
	"appointment_not_found": "Turno no encontrado.",
	"charge_not_found":      "Registro de cobro no encontrado.",
}

var conflictCodes = map[string]string{
	"time_conflict":              "El empleado ya tiene un turno asignado en ese horario.",
	"employee_inactive":          "El empleado no está activo.",
	"invalid_state":              "El turno no admite esa operación en su estado actual.",
	"already_settled":            "El cobro ya está liquidado o cancelado y no acepta más pagos.",
	"deposit_already_registered": "Ya se registró un adelanto para este cobro.",
	"deposit_required_first":     "Se debe registrar el adelanto antes del pago final.",
	"email_already_registered":   "El correo electrónico ya está registrado.",
	"service_has_children":       "El servicio tiene subservicios asociados.",
	"service_in_use":             "El servicio está siendo utilizado en turnos.",
}

var badRequestCodes = map[string]string{
	"invalid_date":          "La fecha debe estar en formato YYYY-MM-DD.",
	"invalid_time":          "La hora debe estar en formato HH:MM o HH:MM:SS.",
	"no_fields":             "No se proporcionaron campos válidos para actualizar.",
	"invalid_status":        "Estado inválido.",
	"invalid_payment_kind":  "El tipo de pago debe ser 'deposit' o 'final'.",
	"invalid_amount":        "El monto pagado debe ser un decimal positivo.",
	"invalid_method":        "Método de pago inválido o demasiado largo.",
	"deposit_exceeds_total": "El monto del adelanto no puede exceder el monto total.",
	"final_amount_mismatch": "El monto final debe ser exactamente el monto pendiente.",
	"invalid_parent":        "Un servicio no puede ser su propio padre.",
}

// writeBusiness maps a BusinessError to its HTTP response. Returns false
// when err is not a business error so the caller can fall back to a 500.
func writeBusiness(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	if msg, ok := notFoundCodes[code]; ok {
		httperr.NotFound(c, code, msg)
		return true
	}
	if msg, ok := conflictCodes[code]; ok {
		httperr.Conflict(c, code, msg)
		return true
	}
	if msg, ok := badRequestCodes[code]; ok {
		httperr.BadRequest(c, code, msg)
		return true
	}

	// unknown business code, still a client-side outcome
	httperr.BadRequest(c, code, "Solicitud inválida.")
	return true
}
