package handlers

import (
	"errors"
	"net/http"

	"mini_crm/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	opSignUp = "signup"
	opLogin  = "login"
)

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Credentials"
// @Success      201   {object}  service.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		h.countAuth(opSignUp, nil, true)
		return
	}

	res, err := h.services.SignUp(c.Request.Context(), input.Email, input.Password)
	h.countAuth(opSignUp, err, false)
	if err != nil {
		h.log.Infow("auth_sign_up_failed", "email", input.Email, "err", err)
		h.respondError(c, "User", "signing up", err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  service.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		h.countAuth(opLogin, nil, true)
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	h.countAuth(opLogin, err, false)
	if err != nil {
		h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		h.respondError(c, "User", "logging in", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]models.PublicUser
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	user, err := h.services.Me(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		// token outlived its user
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidToken})
			return
		}
		h.respondError(c, "User", "fetching user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) countAuth(op string, err error, badRequest bool) {
	if h.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case badRequest, service.IsValidation(err),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		result = "rejected"
	case err != nil:
		result = "error"
	}
	h.metrics.AuthAttempt(op, result)
}
