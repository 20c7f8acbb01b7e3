package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
)

const unavailableSuffix = " is currently unavailable. Please configure email settings in the environment variables."

func (h *Handlers) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	err := h.contact.Submit(c.Request.Context(), service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.fail(c, err, errorText{
			Unavailable: "Contact form" + unavailableSuffix,
			Server:      "Error sending message. Please try again later.",
		})
		return
	}
	respond(c, http.StatusOK, "Message sent successfully! We will get back to you soon.", nil)
}

func (h *Handlers) SubmitMembershipInquiry(c *gin.Context) {
	var req MembershipInquiryRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	err := h.contact.SubmitMembership(c.Request.Context(), service.MembershipInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.fail(c, err, errorText{
			Unavailable: "Membership inquiry" + unavailableSuffix,
			Server:      "Error sending message. Please try again later.",
		})
		return
	}
	respond(c, http.StatusOK, "Membership inquiry submitted successfully! We will contact you within 24 hours.", nil)
}
