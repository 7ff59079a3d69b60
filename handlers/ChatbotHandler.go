package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Replier answers a chat message.
type Replier interface {
	Reply(ctx context.Context, message string) string
}

func ChatbotHandler(c *gin.Context, bot Replier) {
	var request struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := strings.TrimSpace(request.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": bot.Reply(c.Request.Context(), message),
	})
}
