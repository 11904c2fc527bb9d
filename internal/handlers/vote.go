package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/services"
)

type VoteHandler struct {
	discussion *services.DiscussionService
}

func NewVoteHandler(discussion *services.DiscussionService) *VoteHandler {
	return &VoteHandler{discussion: discussion}
}

// Upvote bumps a comment's upvote counter and returns the refreshed
// comment partial.
func (h *VoteHandler) Upvote(c *gin.Context) {
	h.vote(c, h.discussion.Upvote)
}

// Downvote bumps the downvote counter.
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.vote(c, h.discussion.Downvote)
}

func (h *VoteHandler) vote(c *gin.Context, apply func(uint) (*models.Comment, error)) {
	if !h.discussion.VotingEnabled() {
		c.Status(http.StatusNotFound)
		return
	}

	comment, err := apply(idParam(c))
	switch {
	case err == nil:
		Render(c, http.StatusOK, "comment_partial.html", gin.H{
			"Comment":       buildCommentRow(*comment),
			"VotingEnabled": true,
		})
	case errors.Is(err, services.ErrNotFound):
		c.String(http.StatusNotFound, "Commentaire introuvable")
	default:
		c.String(http.StatusInternalServerError, "Error: "+err.Error())
	}
}
