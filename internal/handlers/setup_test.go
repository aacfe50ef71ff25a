package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AgendaEstetica/salon-agenda/internal/config"
	dbpkg "github.com/AgendaEstetica/salon-agenda/internal/db"
	"github.com/AgendaEstetica/salon-agenda/internal/models"
	"github.com/AgendaEstetica/salon-agenda/internal/routes"
	"github.com/AgendaEstetica/salon-agenda/internal/timezone"
)

// setupRouter wires the full API against a per-test in-memory database so
// tests cannot interfere with each other.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{Timezone: timezone.DefaultTimezone}

	r := gin.New()
	routes.RegisterRoutes(r, gdb, cfg, log)
	return r, gdb
}

// serializeWrites caps the pool at a single connection so concurrent
// requests queue on the database the way postgres row locks queue them,
// instead of tripping sqlite's busy handler.
func serializeWrites(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
}

func httpDo(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

// seed inserts a client, an active employee and a service, the minimum a
// booking needs.
type seedData struct {
	Client   models.User
	Employee models.Employee
	Service  models.Service
}

func seed(t *testing.T, gdb *gorm.DB) seedData {
	t.Helper()

	client := models.User{
		Name:         "Laura Pérez",
		Email:        "laura@example.com",
		PasswordHash: "x",
		Role:         models.RoleClient,
	}
	require.NoError(t, gdb.Create(&client).Error)

	staffUser := models.User{
		Name:         "Marina Díaz",
		Email:        "marina@example.com",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
	}
	require.NoError(t, gdb.Create(&staffUser).Error)

	employee := models.Employee{
		UserID:    staffUser.ID,
		Specialty: "colorimetría",
		Active:    true,
	}
	require.NoError(t, gdb.Create(&employee).Error)

	service := models.Service{
		Name:        "Corte y peinado",
		Price:       1000,
		DurationMin: 60,
	}
	require.NoError(t, gdb.Create(&service).Error)

	return seedData{Client: client, Employee: employee, Service: service}
}

// bookAppointment creates an appointment over the API and returns its id.
func bookAppointment(t *testing.T, r *gin.Engine, s seedData, date, clock string) uint {
	t.Helper()

	w := httpDo(r, "POST", "/api/appointments", gin.H{
		"client_id":   s.Client.ID,
		"employee_id": s.Employee.ID,
		"service_id":  s.Service.ID,
		"date":        date,
		"time":        clock,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AppointmentID uint `json:"appointment_id"`
	}
	decode(t, w, &resp)
	require.NotZero(t, resp.AppointmentID)
	return resp.AppointmentID
}

// chargeFor fetches the charge paired with an appointment.
func chargeFor(t *testing.T, r *gin.Engine, appointmentID uint) models.Charge {
	t.Helper()

	w := httpDo(r, "GET", fmt.Sprintf("/api/appointments/%d/charge", appointmentID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ch models.Charge
	decode(t, w, &ch)
	return ch
}
