package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	welcomeReply = "🙏 ยินดีต้อนรับสู่ เหรียญพิทักษ์แผ่นดิน\n\nสั่งจองได้ที่เว็บไซต์ของเรา"
	statusReply  = "📋 ตรวจสอบสถานะ Order\n\nกรุณาแจ้งหมายเลข Order ของท่าน"
)

type webhookEvent struct {
	Type   string `json:"type"`
	Source struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

// POST /webhook — inbound LINE events. Always answers 200 so the
// platform does not retry; replies are fire and forget.
func (ctl *OrderController) Webhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusOK)
		return
	}

	for _, event := range req.Events {
		switch {
		case event.Type == "follow":
			ctl.reply(c, event.Source.UserID, welcomeReply)

		case event.Type == "message" && event.Message.Type == "text":
			text := strings.ToLower(event.Message.Text)
			if strings.Contains(text, "สถานะ") || strings.Contains(text, "order") {
				ctl.reply(c, event.Source.UserID, statusReply)
			}
		}
	}

	c.Status(http.StatusOK)
}

func (ctl *OrderController) reply(c *gin.Context, userID, text string) {
	if userID == "" {
		return
	}
	if err := ctl.Line.Push(c.Request.Context(), userID, text); err != nil {
		zap.L().Warn("webhook reply failed", zap.Error(err))
	}
}
