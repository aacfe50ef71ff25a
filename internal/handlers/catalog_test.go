package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

func TestServiceCRUD(t *testing.T) {
	r, _ := setupRouter(t)

	w := httpDo(r, "POST", "/api/services", gin.H{
		"name":         "Manicura",
		"price":        800.0,
		"duration_min": 45,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var svc models.Service
	decode(t, w, &svc)
	require.NotZero(t, svc.ID)

	// partial update keeps untouched fields
	w = httpDo(r, "PATCH", fmt.Sprintf("/api/services/%d", svc.ID), gin.H{
		"price": 900.0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Service
	decode(t, w, &updated)
	require.Equal(t, 900.0, updated.Price)
	require.Equal(t, "Manicura", updated.Name)
	require.Equal(t, 45, updated.DurationMin)

	w = httpDo(r, "PATCH", fmt.Sprintf("/api/services/%d", svc.ID), gin.H{
		"price": -1.0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_price", errorCode(t, w))

	w = httpDo(r, "GET", "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	require.Equal(t, 1, list.Total)
}

func TestServiceCannotBeItsOwnParent(t *testing.T) {
	r, _ := setupRouter(t)

	w := httpDo(r, "POST", "/api/services", gin.H{
		"name": "Peinado", "price": 500.0, "duration_min": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var svc models.Service
	decode(t, w, &svc)

	w = httpDo(r, "PATCH", fmt.Sprintf("/api/services/%d", svc.ID), gin.H{
		"parent_service_id": svc.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_parent", errorCode(t, w))
}

func TestServiceDeleteGuards(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	// a child hangs off the seeded service
	w := httpDo(r, "POST", "/api/services", gin.H{
		"name":              "Corte express",
		"price":             600.0,
		"duration_min":      30,
		"parent_service_id": s.Service.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var child models.Service
	decode(t, w, &child)

	w = httpDo(r, "DELETE", fmt.Sprintf("/api/services/%d", s.Service.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "service_has_children", errorCode(t, w))

	// the child itself is referenced by an appointment
	wBook := httpDo(r, "POST", "/api/appointments", gin.H{
		"client_id":   s.Client.ID,
		"employee_id": s.Employee.ID,
		"service_id":  child.ID,
		"date":        "2030-03-11",
		"time":        "15:00",
	})
	require.Equal(t, http.StatusCreated, wBook.Code, wBook.Body.String())

	w = httpDo(r, "DELETE", fmt.Sprintf("/api/services/%d", child.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "service_in_use", errorCode(t, w))

	// an untouched service deletes cleanly
	w = httpDo(r, "POST", "/api/services", gin.H{
		"name": "Brushing", "price": 400.0, "duration_min": 20,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var free models.Service
	decode(t, w, &free)

	w = httpDo(r, "DELETE", fmt.Sprintf("/api/services/%d", free.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestEmployeeCreateAndDuplicateEmail(t *testing.T) {
	r, gdb := setupRouter(t)

	w := httpDo(r, "POST", "/api/employees", gin.H{
		"name":      "Carla Gómez",
		"email":     "carla@example.com",
		"password":  "secreto1",
		"specialty": "uñas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		EmployeeID uint `json:"employee_id"`
	}
	decode(t, w, &resp)
	require.NotZero(t, resp.EmployeeID)

	// the identity row exists, carries the employee role and never a
	// plaintext password
	var user models.User
	require.NoError(t, gdb.Where("email = ?", "carla@example.com").First(&user).Error)
	require.Equal(t, models.RoleEmployee, user.Role)
	require.NotEqual(t, "secreto1", user.PasswordHash)
	require.NotEmpty(t, user.PasswordHash)

	w = httpDo(r, "POST", "/api/employees", gin.H{
		"name":     "Otra Carla",
		"email":    "CARLA@example.com",
		"password": "secreto2",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "email_already_registered", errorCode(t, w))
}

func TestEmployeeDeactivate(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	w := httpDo(r, "PATCH", fmt.Sprintf("/api/employees/%d/deactivate", s.Employee.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var employee models.Employee
	require.NoError(t, gdb.First(&employee, s.Employee.ID).Error)
	require.False(t, employee.Active)
}

func TestClientCreateAndList(t *testing.T) {
	r, _ := setupRouter(t)

	w := httpDo(r, "POST", "/api/clients", gin.H{
		"name":       "Julia Romero",
		"email":      "julia@example.com",
		"password":   "secreto1",
		"phone":      "1155550000",
		"birth_date": "1992-07-04",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httpDo(r, "POST", "/api/clients", gin.H{
		"name":       "Mal Fecha",
		"email":      "mal@example.com",
		"password":   "secreto1",
		"birth_date": "04/07/1992",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_date", errorCode(t, w))

	w = httpDo(r, "GET", "/api/clients?query=julia", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int `json:"total"`
	}
	decode(t, w, &list)
	require.Equal(t, 1, list.Total)
}

func TestAttendanceSequence(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	// check-out with no prior check-in
	w := httpDo(r, "POST", "/api/attendance", gin.H{
		"employee_id": s.Employee.ID,
		"kind":        "check_out",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "check_in_required", errorCode(t, w))

	w = httpDo(r, "POST", "/api/attendance", gin.H{
		"employee_id": s.Employee.ID,
		"kind":        "check_in",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// doubled check-in
	w = httpDo(r, "POST", "/api/attendance", gin.H{
		"employee_id": s.Employee.ID,
		"kind":        "check_in",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "already_checked_in", errorCode(t, w))

	w = httpDo(r, "POST", "/api/attendance", gin.H{
		"employee_id": s.Employee.ID,
		"kind":        "check_out",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestEmployeePaymentNetComputed(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	w := httpDo(r, "POST", "/api/employee-payments", gin.H{
		"employee_id":  s.Employee.ID,
		"pay_date":     "2030-03-31",
		"period_start": "2030-03-01",
		"period_end":   "2030-03-31",
		"gross_amount": 50000.0,
		"deductions":   8500.0,
		"method":       "transfer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payment models.EmployeePayment
	decode(t, w, &payment)
	require.Equal(t, 41500.0, payment.NetAmount)

	w = httpDo(r, "POST", "/api/employee-payments", gin.H{
		"employee_id":  s.Employee.ID,
		"pay_date":     "2030-03-31",
		"period_start": "2030-03-01",
		"period_end":   "2030-03-31",
		"gross_amount": 1000.0,
		"deductions":   2000.0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_deductions", errorCode(t, w))
}
