package reminder

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

// Scheduler runs the morning deposit-reminder sweep: every day it looks up
// the appointments scheduled for that date whose charge is still waiting for
// a deposit, so the front desk can chase the clients before they show up.
type Scheduler struct {
	db   *gorm.DB
	log  *logrus.Logger
	loc  *time.Location
	cron *cron.Cron
}

func New(db *gorm.DB, log *logrus.Logger, loc *time.Location) *Scheduler {
	return &Scheduler{
		db:  db,
		log: log,
		loc: loc,
		cron: cron.New(
			cron.WithLocation(loc),
		),
	}
}

// Start registers the daily job and launches the cron loop. The expression
// fires at 08:00 local time.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 8 * * *", s.sweepPendingDeposits); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweepPendingDeposits() {
	today := time.Now().In(s.loc).Format("2006-01-02")

	var charges []models.Charge
	err := s.db.
		Joins("JOIN appointments ON appointments.id = charges.appointment_id").
		Where("appointments.date = ?", today).
		Where("appointments.status <> ?", "cancelled").
		Where("charges.status = ?", "pending_deposit").
		Preload("Appointment.Client").
		Find(&charges).Error
	if err != nil {
		s.log.WithError(err).Error("deposit reminder sweep failed")
		return
	}

	if len(charges) == 0 {
		s.log.WithField("date", today).Info("deposit reminder: nothing pending")
		return
	}

	for _, ch := range charges {
		s.log.WithFields(logrus.Fields{
			"charge_id":      ch.ID,
			"appointment_id": ch.AppointmentID,
			"client":         ch.Appointment.Client.Name,
			"total":          ch.Total,
		}).Warn("appointment today with deposit still pending")
	}
}
