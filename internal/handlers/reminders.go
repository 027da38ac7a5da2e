package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const entityReminder = "Reminder"

// @Summary      List reminders
// @Description  Soonest due first.
// @Tags         reminders
// @Produce      json
// @Success      200  {array}   models.Reminder
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/reminders [get]
// @Security     BearerAuth
func (h *Handler) listReminders(c *gin.Context) {
	out, err := h.services.Reminders.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, entityReminder, "fetching reminders", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Create reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        body  body      ReminderRequest  true  "Reminder"
// @Success      201   {object}  models.Reminder
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/reminders [post]
// @Security     BearerAuth
func (h *Handler) createReminder(c *gin.Context) {
	var req ReminderRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Reminders.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.respondError(c, entityReminder, "creating reminder", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary      Get reminder
// @Tags         reminders
// @Produce      json
// @Param        id   path      string  true  "Reminder ID"
// @Success      200  {object}  models.Reminder
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/reminders/{id} [get]
// @Security     BearerAuth
func (h *Handler) getReminder(c *gin.Context) {
	out, err := h.services.Reminders.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.respondError(c, entityReminder, "fetching reminder", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Reminder ID"
// @Param        body  body      ReminderUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.Reminder
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/reminders/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateReminder(c *gin.Context) {
	var req ReminderUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Reminders.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.patch())
	if err != nil {
		h.respondError(c, entityReminder, "updating reminder", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Delete reminder
// @Tags         reminders
// @Param        id   path  string  true  "Reminder ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/reminders/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReminder(c *gin.Context) {
	if err := h.services.Reminders.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		h.respondError(c, entityReminder, "deleting reminder", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Upcoming reminders
// @Description  Reminders due from now through the next 7 days, soonest first.
// @Tags         reminders
// @Produce      json
// @Success      200  {array}   models.Reminder
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/reminders/upcoming [get]
// @Security     BearerAuth
func (h *Handler) upcomingReminders(c *gin.Context) {
	out, err := h.services.Reminders.Upcoming(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, entityReminder, "fetching upcoming reminders", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
