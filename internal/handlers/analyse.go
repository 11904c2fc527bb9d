package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/services"
	"github.com/plfelter/verbatims-utn-vdl/internal/utils"
	"gorm.io/gorm"
)

const chatSessionKey = "chat_session"

// historyLimit caps how many past exchanges are replayed as context on
// each call.
const historyLimit = 10

type AnalyseHandler struct {
	db      *gorm.DB
	analyse *services.AnalyseService
}

func NewAnalyseHandler(db *gorm.DB, analyse *services.AnalyseService) *AnalyseHandler {
	return &AnalyseHandler{db: db, analyse: analyse}
}

// sessionID returns the visitor's chat session id, creating one on
// first use.
func (h *AnalyseHandler) sessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(chatSessionKey).(string); ok && id != "" {
		return id
	}
	id := utils.GenerateSessionID()
	session.Set(chatSessionKey, id)
	session.Save()
	return id
}

// history returns the last historyLimit exchanges of the session in
// chronological order.
func (h *AnalyseHandler) history(sessionID string) []models.AnalyseChat {
	var chats []models.AnalyseChat
	h.db.Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(historyLimit).
		Find(&chats)
	for i, j := 0, len(chats)-1; i < j; i, j = i+1, j-1 {
		chats[i], chats[j] = chats[j], chats[i]
	}
	return chats
}

// Show renders the analyse chat panel with the session's history.
func (h *AnalyseHandler) Show(c *gin.Context) {
	Render(c, http.StatusOK, "analyse.html", gin.H{
		"Title":   "Analyse",
		"Chats":   h.history(h.sessionID(c)),
		"Enabled": h.analyse.Enabled(),
	})
}

// Ask handles one chat exchange and appends it to the audit log.
func (h *AnalyseHandler) Ask(c *gin.Context) {
	question := c.PostForm("question")
	if question == "" {
		c.String(http.StatusBadRequest, "La question est requise")
		return
	}

	sessionID := h.sessionID(c)
	past := h.history(sessionID)
	history := make([]services.ChatMessage, 0, len(past)*2)
	for _, chat := range past {
		history = append(history,
			services.ChatMessage{Role: "user", Content: chat.Question},
			services.ChatMessage{Role: "assistant", Content: chat.Answer},
		)
	}

	answer, err := h.analyse.Ask(c.Request.Context(), history, question)
	if err != nil {
		c.String(http.StatusBadGateway, "L'analyse est indisponible pour le moment.")
		return
	}

	h.db.Create(&models.AnalyseChat{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	Render(c, http.StatusOK, "analyse_content.html", gin.H{
		"Chats": h.history(sessionID),
	})
}
