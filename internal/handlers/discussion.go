package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/services"
	"github.com/plfelter/verbatims-utn-vdl/internal/utils"
)

type DiscussionHandler struct {
	discussion *services.DiscussionService
	captcha    *services.CaptchaService
}

func NewDiscussionHandler(discussion *services.DiscussionService, captcha *services.CaptchaService) *DiscussionHandler {
	return &DiscussionHandler{discussion: discussion, captcha: captcha}
}

// AnswerRow is one rendered answer.
type AnswerRow struct {
	models.Answer
	BodyHTML template.HTML
}

// CommentRow is one rendered comment with its answers.
type CommentRow struct {
	models.Comment
	BodyHTML   template.HTML
	AnswerRows []AnswerRow
}

func buildCommentRow(comment models.Comment) CommentRow {
	row := CommentRow{
		Comment:    comment,
		BodyHTML:   utils.RenderMarkdown(comment.Body),
		AnswerRows: make([]AnswerRow, len(comment.Answers)),
	}
	for i, answer := range comment.Answers {
		row.AnswerRows[i] = AnswerRow{
			Answer:   answer,
			BodyHTML: utils.RenderMarkdown(answer.Body),
		}
	}
	return row
}

// List shows the discussion board: confirmed comments with their
// confirmed answers.
func (h *DiscussionHandler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, gin.H{})
}

func (h *DiscussionHandler) renderList(c *gin.Context, code int, extra gin.H) {
	comments, err := h.discussion.ListComments()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]CommentRow, len(comments))
	for i, comment := range comments {
		rows[i] = buildCommentRow(comment)
	}

	data := gin.H{
		"Title":         "Discussion",
		"Comments":      rows,
		"VotingEnabled": h.discussion.VotingEnabled(),
		"CaptchaID":     h.captcha.New(),
	}
	for k, v := range extra {
		data[k] = v
	}

	templateName := "discussion.html"
	if IsHtmx(c) {
		templateName = "discussion_content.html"
	}
	Render(c, code, templateName, data)
}

func (h *DiscussionHandler) input(c *gin.Context) services.CommentInput {
	return services.CommentInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Body:      c.PostForm("body"),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Create handles a new top-level comment submission.
func (h *DiscussionHandler) Create(c *gin.Context) {
	if !h.captcha.Verify(c.PostForm("captcha_id"), c.PostForm("captcha_solution")) {
		h.renderList(c, http.StatusBadRequest, gin.H{"Error": "Captcha incorrect, merci de réessayer."})
		return
	}

	_, err := h.discussion.CreateComment(h.input(c))
	h.renderCreateOutcome(c, err)
}

// CreateAnswer handles a threaded reply to an existing comment.
func (h *DiscussionHandler) CreateAnswer(c *gin.Context) {
	commentID := idParam(c)

	if !h.captcha.Verify(c.PostForm("captcha_id"), c.PostForm("captcha_solution")) {
		h.renderList(c, http.StatusBadRequest, gin.H{"Error": "Captcha incorrect, merci de réessayer."})
		return
	}

	_, err := h.discussion.CreateAnswer(commentID, h.input(c))
	h.renderCreateOutcome(c, err)
}

func (h *DiscussionHandler) renderCreateOutcome(c *gin.Context, err error) {
	switch {
	case err == nil:
		h.renderList(c, http.StatusOK, gin.H{
			"Success": "Merci ! Un email de confirmation vous a été envoyé ; votre message apparaîtra une fois confirmé.",
		})
	case errors.Is(err, services.ErrMissingField):
		h.renderList(c, http.StatusBadRequest, gin.H{
			"Error": "Le nom, l'email et le message sont requis.",
		})
	case errors.Is(err, services.ErrNotFound):
		h.renderList(c, http.StatusNotFound, gin.H{
			"Error": "Le commentaire auquel vous répondez n'existe pas.",
		})
	default:
		// Storage failure, or the comment was stored but the mail
		// could not be sent. Either way: generic failure with the
		// underlying message, no automatic retry.
		h.renderList(c, http.StatusInternalServerError, gin.H{
			"Error": "Une erreur est survenue : " + err.Error(),
		})
	}
}

// Confirm redeems a mailed confirmation token.
// Route: GET /confirm/:type/:id/:token
func (h *DiscussionHandler) Confirm(c *gin.Context) {
	contentType := c.Param("type")
	id := idParam(c)
	token := c.Param("token")

	err := h.discussion.Confirm(contentType, id, token)
	switch {
	case err == nil:
		Render(c, http.StatusOK, "confirm.html", gin.H{
			"Title":   "Message confirmé",
			"Success": "Votre message est confirmé et visible dans la discussion.",
		})
	case errors.Is(err, services.ErrNotFound):
		Render(c, http.StatusNotFound, "confirm.html", gin.H{
			"Title": "Message introuvable",
			"Error": "Ce message n'existe pas.",
		})
	case errors.Is(err, services.ErrInvalidToken):
		Render(c, http.StatusBadRequest, "confirm.html", gin.H{
			"Title": "Lien invalide",
			"Error": "Ce lien de confirmation est invalide.",
		})
	default:
		RenderError(c, http.StatusInternalServerError, err.Error())
	}
}
