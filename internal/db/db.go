package db

import (
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/config"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := installOverlapConstraint(db); err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}

	return db
}

// installOverlapConstraint adds the backstop for the locked overlap check:
// the database itself refuses two live appointments of the same employee on
// intersecting windows. The locked read alone cannot serialize two inserts
// into a window with no existing rows, so booking correctness depends on
// this constraint actually existing — a failure here must abort startup, not
// pass silently.
func installOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	err := db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            employee_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status NOT IN ('cancelled'))
    `).Error
	if err != nil && !isDuplicateObject(err) {
		return err
	}
	return nil
}

// isDuplicateObject reports the postgres duplicate-object error family
// (42710, 42P07), raised on every boot after the constraint already exists.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42710" || pgErr.Code == "42P07"
	}
	return false
}

// Migrate is shared with the test suites, which run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Employee{},
		&models.Appointment{},
		&models.Charge{},
		&models.EmployeePayment{},
		&models.AttendanceRecord{},
		&models.AuditLog{},
	)
}
