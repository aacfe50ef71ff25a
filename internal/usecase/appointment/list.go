package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/AgendaEstetica/salon-agenda/internal/domain/schedule"
	"github.com/AgendaEstetica/salon-agenda/internal/dto"
	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(&ap))
	}

	return out, nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uint,
) (*dto.AppointmentListDTO, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	out := toListDTO(ap)
	return &out, nil
}

func toListDTO(ap *models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:        ap.ID,
		Date:      ap.Date,
		StartTime: ap.StartTime,
		EndTime:   ap.EndTime,
		Status:    ap.Status,

		DurationMin: ap.DurationMin,
		BasePrice:   ap.BasePrice,
		ExtraCost:   ap.ExtraCost,
		Notes:       ap.Notes,

		ClientID:    ap.ClientID,
		ClientName:  ap.Client.Name,
		ClientPhone: ap.Client.Phone,

		EmployeeID:        ap.EmployeeID,
		EmployeeName:      ap.Employee.User.Name,
		EmployeeSpecialty: ap.Employee.Specialty,

		ServiceID:           ap.ServiceID,
		ServiceName:         ap.Service.Name,
		ServiceCurrentPrice: ap.Service.Price,

		CreatedAt: ap.CreatedAt,
	}
}
