package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignupRequest is the signup payload.
type SignupRequest struct {
	Email    string `json:"email" binding:"required" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
	Name     string `json:"name" binding:"required" example:"Ann"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.badRequest(c, "bad_request_body", err)
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignupRequest  true  "New account"
// @Success      200   {object}  models.AuthPayload
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *Handler) signup(c *gin.Context) {
	var input SignupRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	payload, err := h.services.Signup(c.Request.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		h.respondError(c, err, "auth_sign_up_failed", "email", input.Email)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  models.AuthPayload
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	payload, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_login_failed", "email", input.Email)
		return
	}
	c.JSON(http.StatusOK, payload)
}
