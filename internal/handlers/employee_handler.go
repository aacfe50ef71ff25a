package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/audit"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdateEmployeeRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

// Create inserts the identity row and the work profile in one transaction,
// so a failed profile insert never leaves an orphan user behind.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := h.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		httperr.Conflict(c, "email_already_registered", "El correo electrónico ya está registrado.")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "failed_to_create_employee", "Error del servidor al crear el empleado.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Error del servidor al crear el empleado.")
		return
	}

	var employee models.Employee

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        req.Phone,
			Role:         models.RoleEmployee,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		employee = models.Employee{
			UserID:    user.ID,
			Specialty: req.Specialty,
			Active:    true,
		}
		return tx.Create(&employee).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Error del servidor al crear el empleado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "employee_created",
		Entity:   "employee",
		EntityID: &employee.ID,
		Metadata: gin.H{"email": email},
	})

	c.JSON(201, gin.H{
		"message":     "Empleado creado correctamente.",
		"employee_id": employee.ID,
	})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Employee{}).Preload("User")

	if activeStr := strings.TrimSpace(c.Query("active")); activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	if specialty := strings.ToLower(strings.TrimSpace(c.Query("specialty"))); specialty != "" {
		q = q.Where("LOWER(specialty) LIKE ?", "%"+specialty+"%")
	}

	var employees []models.Employee
	if err := q.
		Order("id ASC").
		Find(&employees).Error; err != nil {

		httperr.Internal(c, "failed_to_list_employees", "Error del servidor al obtener los empleados.")
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.
		Preload("User").
		First(&employee, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error del servidor al obtener el empleado.")
		return
	}

	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.
		Preload("User").
		First(&employee, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error del servidor al obtener el empleado.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil || req.Phone != nil {
			if req.Name != nil {
				employee.User.Name = strings.TrimSpace(*req.Name)
			}
			if req.Phone != nil {
				employee.User.Phone = *req.Phone
			}
			if err := tx.Save(&employee.User).Error; err != nil {
				return err
			}
		}

		if req.Specialty != nil {
			employee.Specialty = *req.Specialty
		}
		if req.Active != nil {
			employee.Active = *req.Active
		}
		return tx.Save(&employee).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Error del servidor al actualizar el empleado.")
		return
	}

	httpresp.OK(c, employee)
}

// Deactivate marks the employee inactive instead of deleting the row, so
// past appointments keep a valid reference.
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Empleado no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Error del servidor al obtener el empleado.")
		return
	}

	employee.Active = false
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Error del servidor al actualizar el empleado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "employee_deactivated",
		Entity:   "employee",
		EntityID: &employee.ID,
	})

	c.JSON(200, gin.H{"message": "Empleado desactivado correctamente."})
}
