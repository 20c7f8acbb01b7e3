package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
)

func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	res, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err, errorText{Server: "Server error during registration"})
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", res)
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, errorText{Server: "Server error during login"})
		return
	}
	respond(c, http.StatusOK, "Login successful", res)
}

func (h *Handlers) Me(c *gin.Context) {
	u, err := h.auth.Me(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err, errorText{NotFound: "User not found"})
		return
	}
	respond(c, http.StatusOK, "", u)
}

func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	u, err := h.auth.UpdateProfile(c.Request.Context(), currentUser(c).ID, req.toUpdate())
	if err != nil {
		h.fail(c, err, errorText{NotFound: "User not found", Server: "Server error during profile update"})
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", u)
}

func (h *Handlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err, errorText{NotFound: "User not found"})
		return
	}
	respond(c, http.StatusOK, "Password updated successfully", nil)
}

// ForgotPassword always answers 200 so the reply does not reveal which emails are registered.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err, errorText{Server: "Error sending password reset email"})
		return
	}
	respond(c, http.StatusOK, "If an account exists for this email, a password reset link has been sent", nil)
}

func (h *Handlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	res, err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if errors.Is(err, service.ErrInvalidToken) {
		c.JSON(http.StatusBadRequest, Response{Message: "Invalid or expired reset token"})
		return
	}
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusOK, "Password reset successful", res)
}

func (h *Handlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), currentClaims(c)); err != nil {
		h.fail(c, err, errorText{})
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}
