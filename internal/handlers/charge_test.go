package handlers_test

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AgendaEstetica/salon-agenda/internal/models"
)

func payBody(kind string, amount float64) gin.H {
	return gin.H{
		"payment_kind": kind,
		"amount_paid":  amount,
		"method":       "cash",
	}
}

type paymentResponse struct {
	NewStatus string  `json:"new_status"`
	Pending   float64 `json:"pending"`
	Reference string  `json:"reference"`
}

func TestFullDepositSettlesImmediately(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb) // service costs 1000

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("deposit", 1000))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp paymentResponse
	decode(t, w, &resp)
	require.Equal(t, "paid_complete", resp.NewStatus)
	require.Zero(t, resp.Pending)
	require.NotEmpty(t, resp.Reference)
}

func TestPartialDepositThenExactFinal(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("deposit", 400))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp paymentResponse
	decode(t, w, &resp)
	require.Equal(t, "deposit_paid", resp.NewStatus)
	require.Equal(t, 600.0, resp.Pending)

	// final short or over is refused, never applied partially
	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("final", 500))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "final_amount_mismatch", errorCode(t, w))

	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("final", 700))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "final_amount_mismatch", errorCode(t, w))

	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("final", 600))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &resp)
	require.Equal(t, "paid_complete", resp.NewStatus)
	require.Zero(t, resp.Pending)

	// nothing more is accepted once settled
	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("final", 0.01))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "already_settled", errorCode(t, w))
}

func TestPaymentStageOrderEnforced(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	// final before any deposit
	w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("final", 1000))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "deposit_required_first", errorCode(t, w))

	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("deposit", 300))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a second deposit
	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("deposit", 300))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "deposit_already_registered", errorCode(t, w))
}

func TestSimultaneousDepositsOnlyOneApplies(t *testing.T) {
	r, gdb := setupRouter(t)
	serializeWrites(t, gdb)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), payBody("deposit", 400))
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	var got []int
	for c := range codes {
		got = append(got, c)
	}
	sort.Ints(got)
	require.Equal(t, []int{http.StatusOK, http.StatusConflict}, got)

	// exactly one deposit landed
	var after models.Charge
	require.NoError(t, gdb.First(&after, ch.ID).Error)
	require.Equal(t, "deposit_paid", after.Status)
	require.Equal(t, 400.0, after.DepositAmount)
	require.Equal(t, 600.0, after.Pending)
}

func TestPaymentValidation(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	cases := []struct {
		name string
		body gin.H
		code string
	}{
		{"unknown kind", payBody("refund", 100), "invalid_payment_kind"},
		{"negative amount", payBody("deposit", -50), "invalid_amount"},
		{"more than two decimals", payBody("deposit", 100.001), "invalid_amount"},
		{"deposit above total", payBody("deposit", 1500), "deposit_exceeds_total"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.Equal(t, tc.code, errorCode(t, w))
		})
	}

	// none of the rejected attempts touched the charge
	after := chargeFor(t, r, id)
	require.Equal(t, "pending_deposit", after.Status)
	require.Equal(t, 1000.0, after.Pending)
}

func TestPaymentDateParsing(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	body := payBody("deposit", 400)
	body["payment_date"] = "11-03-2030"
	w := httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_payment_date", errorCode(t, w))

	body["payment_date"] = "2030-03-10"
	w = httpDo(r, "POST", fmt.Sprintf("/api/charges/%d/payments", ch.ID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	after := chargeFor(t, r, id)
	require.NotNil(t, after.DepositDate)
	require.Equal(t, "2030-03-10", after.DepositDate.Format("2006-01-02"))
}

func TestChargeLookups(t *testing.T) {
	r, gdb := setupRouter(t)
	s := seed(t, gdb)

	id := bookAppointment(t, r, s, "2030-03-11", "10:00")
	ch := chargeFor(t, r, id)

	w := httpDo(r, "GET", fmt.Sprintf("/api/charges/%d", ch.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/api/charges/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "charge_not_found", errorCode(t, w))

	w = httpDo(r, "GET", "/api/appointments/9999/charge", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httpDo(r, "POST", "/api/charges/9999/payments", payBody("deposit", 100))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "charge_not_found", errorCode(t, w))

	w = httpDo(r, "GET", "/api/charges?status=pending_deposit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int `json:"total"`
	}
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Total)
}
