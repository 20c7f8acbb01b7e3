package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func chatReply(c *gin.Context, reply ChatReply) {
	reply.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	reply.User = currentUserID(c)
	respond(c, http.StatusOK, "", reply)
}

func (h *Handlers) ChatWorkout(c *gin.Context) {
	var req ChatRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	chatReply(c, ChatReply{Message: h.bot.Reply(req.Message)})
}

func (h *Handlers) ChatNutrition(c *gin.Context) {
	var req ChatRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	chatReply(c, ChatReply{Message: h.bot.Reply(req.Message)})
}

func (h *Handlers) ChatCustomDiet(c *gin.Context) {
	var req CustomDietRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	chatReply(c, ChatReply{DietPlan: h.bot.DietPlan(req.Requirements)})
}

func (h *Handlers) ChatGeneral(c *gin.Context) {
	var req GeneralChatRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	chatReply(c, ChatReply{Message: h.bot.Reply(req.Message)})
}

// ChatMessage is the anonymous endpoint; its reply carries no user.
func (h *Handlers) ChatMessage(c *gin.Context) {
	var req GeneralChatRequest
	if !h.bindOrReject(c, &req) {
		return
	}
	respond(c, http.StatusOK, "", gin.H{
		"message":   h.bot.Reply(req.Message),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
