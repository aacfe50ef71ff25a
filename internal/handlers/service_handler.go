package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/httpresp"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMin     int     `json:"duration_min" binding:"required,min=1"`
	ParentServiceID *uint   `json:"parent_service_id"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMin     *int     `json:"duration_min,omitempty"`
	ParentServiceID *uint    `json:"parent_service_id,omitempty"`
	ClearParent     bool     `json:"clear_parent,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Service{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if parent := strings.TrimSpace(c.Query("parent_id")); parent != "" {
		q = q.Where("parent_service_id = ?", parent)
	}

	var services []models.Service
	if err := q.
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Error del servidor al obtener los servicios.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.
		Preload("ParentService").
		First(&svc, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error del servidor al obtener el servicio.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.ParentServiceID != nil {
		var parent models.Service
		if err := h.db.First(&parent, *req.ParentServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.NotFound(c, "service_not_found", "El servicio padre no existe.")
				return
			}
			httperr.Internal(c, "failed_to_create_service", "Error del servidor al crear el servicio.")
			return
		}
	}

	svc := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMin:     req.DurationMin,
		ParentServiceID: req.ParentServiceID,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error del servidor al crear el servicio.")
		return
	}

	c.JSON(201, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error del servidor al obtener el servicio.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			httperr.BadRequest(c, "invalid_price", "El precio debe ser mayor a cero.")
			return
		}
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "La duración debe ser de al menos un minuto.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.ClearParent {
		svc.ParentServiceID = nil
	} else if req.ParentServiceID != nil {
		if *req.ParentServiceID == svc.ID {
			httperr.BadRequest(c, "invalid_parent", "Un servicio no puede ser su propio padre.")
			return
		}
		var parent models.Service
		if err := h.db.First(&parent, *req.ParentServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.NotFound(c, "service_not_found", "El servicio padre no existe.")
				return
			}
			httperr.Internal(c, "failed_to_update_service", "Error del servidor al actualizar el servicio.")
			return
		}
		svc.ParentServiceID = req.ParentServiceID
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error del servidor al actualizar el servicio.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete refuses to remove a service that is still referenced, either by
// child services or by appointments that snapshot it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error del servidor al obtener el servicio.")
		return
	}

	var children int64
	if err := h.db.Model(&models.Service{}).
		Where("parent_service_id = ?", svc.ID).
		Count(&children).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_service", "Error del servidor al eliminar el servicio.")
		return
	}
	if children > 0 {
		httperr.Conflict(c, "service_has_children", "El servicio tiene subservicios asociados.")
		return
	}

	var inUse int64
	if err := h.db.Model(&models.Appointment{}).
		Where("service_id = ?", svc.ID).
		Count(&inUse).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_service", "Error del servidor al eliminar el servicio.")
		return
	}
	if inUse > 0 {
		httperr.Conflict(c, "service_in_use", "El servicio está siendo utilizado en turnos.")
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Error del servidor al eliminar el servicio.")
		return
	}

	c.JSON(200, gin.H{"message": "Servicio eliminado correctamente."})
}
