package services

import (
	"fmt"
	"strings"

	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/gorm"
)

// PerPage is the fixed page size of the contributions listing.
const PerPage = 30

// ContributionView pairs a contribution with its display name, which
// depends on the anonymization policy.
type ContributionView struct {
	models.Contribution
	DisplayContributor string
}

// SearchResult is one page of (possibly filtered) contributions.
type SearchResult struct {
	Items    []ContributionView
	Keywords []string
	Page     int
	Total    int64
	HasMore  bool
}

// ContributionService runs keyword search and pagination over the
// contributions table. A record matches when every keyword matches at
// least one searchable field: the anonymized contributor name, the
// body, the id rendered as text, and the formatted timestamp.
type ContributionService struct {
	db   *gorm.DB
	anon *Anonymizer
}

func NewContributionService(db *gorm.DB, anon *Anonymizer) *ContributionService {
	return &ContributionService{db: db, anon: anon}
}

// Search returns the requested page. An empty query lists everything.
// A fresh search (non-empty query, page 1) always starts at offset 0,
// whatever stale page number the client may still carry.
func (s *ContributionService) Search(query string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	keywords := strings.Fields(query)
	offset := (page - 1) * PerPage

	tx := s.db.Model(&models.Contribution{})
	contribExpr, contribArgs := s.anon.ContributorSQL()
	timeExpr := s.formattedTimeSQL()

	for _, kw := range keywords {
		pattern := "%" + escapeLike(strings.ToLower(kw)) + "%"
		cond := fmt.Sprintf(
			`LOWER(%s) LIKE ? ESCAPE '\' OR LOWER(body) LIKE ? ESCAPE '\' OR CAST(id AS TEXT) LIKE ? ESCAPE '\' OR %s LIKE ? ESCAPE '\'`,
			contribExpr, timeExpr)
		args := make([]interface{}, 0, len(contribArgs)+4)
		args = append(args, contribArgs...)
		args = append(args, pattern, pattern, pattern, pattern)
		tx = tx.Where(cond, args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count contributions: %w", err)
	}

	var contribs []models.Contribution
	if err := tx.Order("id ASC").Limit(PerPage).Offset(offset).Find(&contribs).Error; err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}

	items := make([]ContributionView, len(contribs))
	for i, c := range contribs {
		items[i] = ContributionView{
			Contribution:       c,
			DisplayContributor: s.anon.Apply(c.Contributor),
		}
	}

	return &SearchResult{
		Items:    items,
		Keywords: keywords,
		Page:     page,
		Total:    total,
		HasMore:  len(contribs) == PerPage && total > int64(offset+PerPage),
	}, nil
}

// Count returns the size of the whole dataset.
func (s *ContributionService) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Contribution{}).Count(&total).Error
	return total, err
}

// formattedTimeSQL renders the time column the same way
// models.TimeLayout does, per dialect, so timestamps are searchable by
// their displayed form.
func (s *ContributionService) formattedTimeSQL() string {
	if s.db.Dialector.Name() == "postgres" {
		return `to_char("time", 'DD/MM/YYYY HH24:MI')`
	}
	return `strftime('%d/%m/%Y %H:%M', "time")`
}

// escapeLike neutralizes LIKE wildcards inside a keyword.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
