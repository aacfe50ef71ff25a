package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type EmployeePaymentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeePaymentHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *EmployeePaymentHandler {
	return &EmployeePaymentHandler{db: db, audit: auditDispatcher}
}

type CreateEmployeePaymentRequest struct {
	EmployeeID  uint    `json:"employee_id" binding:"required"`
	PayDate     string  `json:"pay_date" binding:"required"`
	PeriodStart string  `json:"period_start" binding:"required"`
	PeriodEnd   string  `json:"period_end" binding:"required"`
	GrossAmount float64 `json:"gross_amount" binding:"required,gt=0"`
	Deductions  float64 `json:"deductions"`
	Method      string  `json:"method"`
	Reference   string  `json:"reference"`
	Notes       string  `json:"notes"`
}

func (h *EmployeePaymentHandler) Create(c *gin.Context) {
	var req CreateEmployeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	for _, d := range []string{req.PayDate, req.PeriodStart, req.PeriodEnd} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			httperr.BadRequest(c, "invalid_date", "La fecha debe estar en formato YYYY-MM-DD.")
			return
		}
	}

	if req.Deductions < 0 || req.Deductions > req.GrossAmount {
		httperr.BadRequest(c, "invalid_deductions", "Las deducciones no pueden ser negativas ni superar el monto bruto.")
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_payment", "Error del servidor al registrar el pago.")
		return
	}

	payment := models.EmployeePayment{
		EmployeeID:  req.EmployeeID,
		PayDate:     req.PayDate,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		GrossAmount: req.GrossAmount,
		Deductions:  req.Deductions,
		NetAmount:   req.GrossAmount - req.Deductions,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Error del servidor al registrar el pago.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "employee_payment_created",
		Entity:   "employee_payment",
		EntityID: &payment.ID,
		Metadata: gin.H{"employee_id": payment.EmployeeID, "net_amount": payment.NetAmount},
	})

	c.JSON(201, payment)
}

func (h *EmployeePaymentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.EmployeePayment{}).Preload("Employee.User")

	if employee := strings.TrimSpace(c.Query("employee_id")); employee != "" {
		q = q.Where("employee_id = ?", employee)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		q = q.Where("pay_date >= ?", from)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		q = q.Where("pay_date <= ?", to)
	}

	var payments []models.EmployeePayment
	if err := q.
		Order("pay_date DESC, id DESC").
		Find(&payments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_payments", "Error del servidor al obtener los pagos.")
		return
	}

	httpresp.List(c, payments)
}

func (h *EmployeePaymentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var payment models.EmployeePayment
	if err := h.db.
		Preload("Employee.User").
		First(&payment, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "payment_not_found", "Pago no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_payment", "Error del servidor al obtener el pago.")
		return
	}

	httpresp.OK(c, payment)
}
