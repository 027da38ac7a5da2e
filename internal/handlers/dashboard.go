package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard
// @Description  Client and project totals, reminders due within 7 days and projects grouped by status.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	d, err := h.services.Dashboard.Get(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, "Dashboard", "fetching dashboard data", err)
		return
	}
	c.JSON(http.StatusOK, d)
}
