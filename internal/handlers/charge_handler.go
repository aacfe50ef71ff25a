package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainBilling "github.com/AgendaEstetica/salon-agenda/internal/domain/billing"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	ucBilling "github.com/AgendaEstetica/salon-agenda/internal/usecase/billing"
)

// ======================================================
// HANDLER
// ======================================================

type ChargeHandler struct {
	registerUC *ucBilling.RegisterPayment
	repo       domainBilling.Repository
}

func NewChargeHandler(
	registerUC *ucBilling.RegisterPayment,
	repo domainBilling.Repository,
) *ChargeHandler {
	return &ChargeHandler{
		registerUC: registerUC,
		repo:       repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterPaymentRequest struct {
	PaymentKind string  `json:"payment_kind" binding:"required"`
	AmountPaid  float64 `json:"amount_paid" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	PaymentDate *string `json:"payment_date"`
	Notes       *string `json:"notes"`
}

var paymentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ======================================================
// REGISTER PAYMENT
// ======================================================

func (h *ChargeHandler) RegisterPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var paidAt *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		parsed, err := parsePaymentDate(*req.PaymentDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_payment_date", "Formato de fecha de pago inválido.")
			return
		}
		paidAt = &parsed
	}

	result, err := h.registerUC.Execute(c.Request.Context(), ucBilling.RegisterPaymentInput{
		ChargeID: id,
		Kind:     req.PaymentKind,
		Amount:   req.AmountPaid,
		Method:   req.Method,
		PaidAt:   paidAt,
		Notes:    req.Notes,
	})
	if err != nil {
		if writeBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_register_payment", "Error del servidor al registrar el pago.")
		return
	}

	c.JSON(200, gin.H{
		"message":    "Pago registrado correctamente.",
		"new_status": result.NewStatus,
		"pending":    result.Pending,
		"reference":  result.PaymentReference,
	})
}

func parsePaymentDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range paymentDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ======================================================
// READS
// ======================================================

func (h *ChargeHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ch, err := h.repo.GetCharge(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "charge_not_found", "Registro de cobro no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_charge", "Error del servidor al obtener el cobro.")
		return
	}

	httpresp.OK(c, ch)
}

func (h *ChargeHandler) GetByAppointment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ch, err := h.repo.GetChargeByAppointment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "charge_not_found", "No se encontró registro de cobro para el turno.")
			return
		}
		httperr.Internal(c, "failed_to_get_charge", "Error del servidor al obtener el cobro.")
		return
	}

	httpresp.OK(c, ch)
}

func (h *ChargeHandler) List(c *gin.Context) {
	filter := domainBilling.ChargeFilter{
		Status:   c.Query("status"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	charges, err := h.repo.ListCharges(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_charges", "Error del servidor al obtener los cobros.")
		return
	}

	httpresp.List(c, charges)
}
