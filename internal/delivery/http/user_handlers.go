package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userNotFound = "User not found"

func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, errorText{})
		return
	}
	list(c, users)
}

func (h *Handlers) GetUser(c *gin.Context) {
	id, valid := idParam(c, userNotFound)
	if !valid {
		return
	}
	u, err := h.users.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: userNotFound, Forbidden: "Not authorized to access this user profile"})
		return
	}
	respond(c, http.StatusOK, "", u)
}

func (h *Handlers) UpdateMembership(c *gin.Context) {
	id, valid := idParam(c, userNotFound)
	if !valid {
		return
	}
	var req MembershipRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	u, err := h.users.UpdateMembership(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		h.fail(c, err, errorText{NotFound: userNotFound})
		return
	}
	respond(c, http.StatusOK, "Membership updated successfully", gin.H{
		"user": MembershipView{ID: u.ID, Name: u.Name, Email: u.Email, Membership: u.Membership},
	})
}

func (h *Handlers) UserStats(c *gin.Context) {
	id, valid := idParam(c, userNotFound)
	if !valid {
		return
	}
	stats, err := h.users.Stats(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.fail(c, err, errorText{NotFound: userNotFound, Forbidden: "Not authorized to access this user stats"})
		return
	}
	respond(c, http.StatusOK, "", stats)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	id, valid := idParam(c, userNotFound)
	if !valid {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, errorText{NotFound: userNotFound})
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}
