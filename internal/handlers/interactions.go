package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const entityInteraction = "Interaction"

// @Summary      List interactions
// @Description  Most recent first.
// @Tags         interactions
// @Produce      json
// @Success      200  {array}   models.Interaction
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/interactions [get]
// @Security     BearerAuth
func (h *Handler) listInteractions(c *gin.Context) {
	out, err := h.services.Interactions.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, entityInteraction, "fetching interactions", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Create interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        body  body      InteractionRequest  true  "Interaction"
// @Success      201   {object}  models.Interaction
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/interactions [post]
// @Security     BearerAuth
func (h *Handler) createInteraction(c *gin.Context) {
	var req InteractionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Interactions.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.respondError(c, entityInteraction, "creating interaction", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary      Get interaction
// @Tags         interactions
// @Produce      json
// @Param        id   path      string  true  "Interaction ID"
// @Success      200  {object}  models.Interaction
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/interactions/{id} [get]
// @Security     BearerAuth
func (h *Handler) getInteraction(c *gin.Context) {
	out, err := h.services.Interactions.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.respondError(c, entityInteraction, "fetching interaction", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Interaction ID"
// @Param        body  body      InteractionUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.Interaction
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/interactions/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateInteraction(c *gin.Context) {
	var req InteractionUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Interactions.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.patch())
	if err != nil {
		h.respondError(c, entityInteraction, "updating interaction", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Delete interaction
// @Tags         interactions
// @Param        id   path  string  true  "Interaction ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/interactions/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteInteraction(c *gin.Context) {
	if err := h.services.Interactions.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		h.respondError(c, entityInteraction, "deleting interaction", err)
		return
	}
	c.Status(http.StatusNoContent)
}
