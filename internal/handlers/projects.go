package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const entityProject = "Project"

// @Summary      List projects
// @Description  Latest deadline first, with the linked client summary.
// @Tags         projects
// @Produce      json
// @Success      200  {array}   models.Project
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/projects [get]
// @Security     BearerAuth
func (h *Handler) listProjects(c *gin.Context) {
	out, err := h.services.Projects.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.respondError(c, entityProject, "fetching projects", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      ProjectRequest  true  "Project"
// @Success      201   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/projects [post]
// @Security     BearerAuth
func (h *Handler) createProject(c *gin.Context) {
	var req ProjectRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Projects.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.respondError(c, entityProject, "creating project", err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProject(c *gin.Context) {
	out, err := h.services.Projects.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.respondError(c, entityProject, "fetching project", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Update project
// @Description  Only the supplied fields change. "clientId": null or "" unlinks the client.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Project ID"
// @Param        body  body      ProjectUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateProject(c *gin.Context) {
	var req ProjectUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	out, err := h.services.Projects.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.patch())
	if err != nil {
		h.respondError(c, entityProject, "updating project", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Delete project
// @Tags         projects
// @Param        id   path  string  true  "Project ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.services.Projects.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		h.respondError(c, entityProject, "deleting project", err)
		return
	}
	c.Status(http.StatusNoContent)
}
