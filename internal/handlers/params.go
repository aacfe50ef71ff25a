package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AgendaEstetica/salon-agenda/internal/httperr"
)

// paramID parses a positive integer path parameter, writing the 400 itself.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "El ID debe ser un entero positivo.")
		return 0, false
	}
	return uint(n), true
}
