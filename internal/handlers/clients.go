package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const entityClient = "Client"

// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {array}   models.Client
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/clients [get]
// @Security     BearerAuth
func (h *Handler) listClients(c *gin.Context) {
	out, err := h.services.Clients.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, entityClient, "fetching clients", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      ClientRequest  true  "Client"
// @Success      201   {object}  models.Client
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/clients [post]
// @Security     BearerAuth
func (h *Handler) createClient(c *gin.Context) {
	var req ClientRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Clients.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.respondError(c, entityClient, "creating client", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  models.Client
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/clients/{id} [get]
// @Security     BearerAuth
func (h *Handler) getClient(c *gin.Context) {
	out, err := h.services.Clients.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.respondError(c, entityClient, "fetching client", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update client
// @Description  Only the supplied fields change.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Client ID"
// @Param        body  body      ClientUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.Client
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/clients/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateClient(c *gin.Context) {
	var req ClientUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Clients.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.patch())
	if err != nil {
		h.respondError(c, entityClient, "updating client", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Delete client
// @Tags         clients
// @Param        id   path  string  true  "Client ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/clients/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteClient(c *gin.Context) {
	if err := h.services.Clients.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		h.respondError(c, entityClient, "deleting client", err)
		return
	}
	c.Status(http.StatusNoContent)
}
