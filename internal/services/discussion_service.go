package services

import (
	"errors"
	"fmt"

	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/utils"
	"gorm.io/gorm"
)

// Content types accepted by the confirmation endpoint.
const (
	ContentTypeComment = "comment"
	ContentTypeAnswer  = "answer"
)

// ConfirmationSender dispatches the confirmation link for a freshly
// persisted comment or answer.
type ConfirmationSender interface {
	SendConfirmation(email, token, contentType string, contentID uint) error
}

// CommentInput carries the user-supplied fields of a new comment or
// answer plus the request metadata recorded alongside it.
type CommentInput struct {
	Username  string
	Email     string
	Body      string
	IPAddress string
	UserAgent string
}

// DiscussionService owns the comment/answer lifecycle: creation with a
// confirmation token, token redemption, the confirmed-only public
// listing, and the vote counters.
//
// When voting is enabled comments are ordered by score then recency;
// otherwise by recency alone. The two orderings are mutually exclusive.
type DiscussionService struct {
	db            *gorm.DB
	mail          ConfirmationSender
	votingEnabled bool
}

func NewDiscussionService(db *gorm.DB, mail ConfirmationSender, votingEnabled bool) *DiscussionService {
	return &DiscussionService{db: db, mail: mail, votingEnabled: votingEnabled}
}

// VotingEnabled reports whether the vote ledger is active.
func (s *DiscussionService) VotingEnabled() bool {
	return s.votingEnabled
}

func (in *CommentInput) validate() error {
	if in.Username == "" || in.Email == "" || in.Body == "" {
		return ErrMissingField
	}
	return nil
}

// CreateComment persists a new unconfirmed comment and then mails its
// confirmation link. Persistence and dispatch are sequential, not
// transactional: when the mail fails the comment is already stored,
// stays pending, and the error is returned alongside it.
func (s *DiscussionService) CreateComment(in CommentInput) (*models.Comment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	comment := models.Comment{
		Username:          in.Username,
		Email:             in.Email,
		Body:              in.Body,
		IPAddress:         in.IPAddress,
		UserAgent:         in.UserAgent,
		Confirmed:         false,
		ConfirmationToken: utils.GenerateConfirmationToken(),
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.mail.SendConfirmation(comment.Email, comment.ConfirmationToken, ContentTypeComment, comment.ID); err != nil {
		return &comment, err
	}
	return &comment, nil
}

// CreateAnswer is CreateComment for a threaded reply; the parent
// comment must exist.
func (s *DiscussionService) CreateAnswer(commentID uint, in CommentInput) (*models.Answer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var parent models.Comment
	if err := s.db.First(&parent, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load comment %d: %w", commentID, err)
	}

	answer := models.Answer{
		CommentID:         parent.ID,
		Username:          in.Username,
		Email:             in.Email,
		Body:              in.Body,
		IPAddress:         in.IPAddress,
		UserAgent:         in.UserAgent,
		Confirmed:         false,
		ConfirmationToken: utils.GenerateConfirmationToken(),
	}

	if err := s.db.Create(&answer).Error; err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	if err := s.mail.SendConfirmation(answer.Email, answer.ConfirmationToken, ContentTypeAnswer, answer.ID); err != nil {
		return &answer, err
	}
	return &answer, nil
}

// Confirm redeems a confirmation token. Tokens never expire; repeating
// a confirmation with the correct token is a harmless no-op and the
// response does not distinguish it from a fresh one.
func (s *DiscussionService) Confirm(contentType string, id uint, token string) error {
	switch contentType {
	case ContentTypeComment:
		var comment models.Comment
		if err := s.db.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load comment %d: %w", id, err)
		}
		if comment.ConfirmationToken != token {
			return ErrInvalidToken
		}
		if err := s.db.Model(&comment).Update("confirmed", true).Error; err != nil {
			return fmt.Errorf("confirm comment %d: %w", id, err)
		}
	case ContentTypeAnswer:
		var answer models.Answer
		if err := s.db.First(&answer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load answer %d: %w", id, err)
		}
		if answer.ConfirmationToken != token {
			return ErrInvalidToken
		}
		if err := s.db.Model(&answer).Update("confirmed", true).Error; err != nil {
			return fmt.Errorf("confirm answer %d: %w", id, err)
		}
	default:
		return ErrNotFound
	}
	return nil
}

// ListComments returns the public discussion: confirmed comments with
// their confirmed answers. The confirmed-only predicate is applied
// here, uniformly, for every listing entry point.
func (s *DiscussionService) ListComments() ([]models.Comment, error) {
	order := "created_at DESC"
	if s.votingEnabled {
		order = "(upvotes - downvotes) DESC, created_at DESC"
	}

	var comments []models.Comment
	err := s.db.
		Where("confirmed = ?", true).
		Order(order).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Where("confirmed = ?", true).Order("created_at ASC")
		}).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// GetComment loads one confirmed comment with its confirmed answers.
func (s *DiscussionService) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.
		Where("confirmed = ?", true).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Where("confirmed = ?", true).Order("created_at ASC")
		}).
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load comment %d: %w", id, err)
	}
	return &comment, nil
}

// Upvote bumps the upvote counter by one in a single SQL statement, so
// concurrent votes cannot lose updates. There is no per-voter
// deduplication: any caller may vote any number of times.
func (s *DiscussionService) Upvote(id uint) (*models.Comment, error) {
	return s.vote(id, "upvotes")
}

// Downvote bumps the downvote counter, same rules as Upvote.
func (s *DiscussionService) Downvote(id uint) (*models.Comment, error) {
	return s.vote(id, "downvotes")
}

func (s *DiscussionService) vote(id uint, column string) (*models.Comment, error) {
	// Only confirmed comments are votable: a pending comment is not
	// publicly visible, so a vote on it must not persist anything.
	res := s.db.Model(&models.Comment{}).
		Where("id = ? AND confirmed = ?", id, true).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("update %s on comment %d: %w", column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComment(id)
}
