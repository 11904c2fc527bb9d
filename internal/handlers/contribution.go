package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/services"
	"github.com/plfelter/verbatims-utn-vdl/internal/utils"
	"gorm.io/gorm"
)

type ContributionHandler struct {
	db      *gorm.DB
	contrib *services.ContributionService
}

func NewContributionHandler(db *gorm.DB, contrib *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{db: db, contrib: contrib}
}

// ContributionRow carries one contribution plus its highlighted
// rendering for the templates.
type ContributionRow struct {
	services.ContributionView
	IDHTML          template.HTML
	ContributorHTML template.HTML
	BodyHTML        template.HTML
	TimeHTML        template.HTML
}

// Index redirects the root to the contributions listing.
func (h *ContributionHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/contributions")
}

// List is the initial full-page load of /contributions.
func (h *ContributionHandler) List(c *gin.Context) {
	h.respond(c, "", pageQuery(c), true)
}

// Content handles the dynamic updates: POST carries a fresh search
// (page restarts at 1 whatever the client still has), GET pages
// through the current result set.
func (h *ContributionHandler) Content(c *gin.Context) {
	var query string
	page := 1
	if c.Request.Method == http.MethodPost {
		query = c.PostForm("search")
	} else {
		query = c.Query("search")
		page = pageQuery(c)
	}

	h.respond(c, query, page, false)
}

func (h *ContributionHandler) respond(c *gin.Context, query string, page int, fullPage bool) {
	if page < 1 {
		page = 1
	}

	templateName := "contributions_content.html"
	if fullPage {
		templateName = "contributions.html"
	}

	// The unfiltered listing is the landing page of the whole site;
	// cache its render data briefly.
	cacheKey := fmt.Sprintf("contrib:%s:page:%d", templateName, page)
	if query == "" {
		if cached := utils.Pages().Lookup(cacheKey); cached != nil {
			if hData, ok := cached.(gin.H); ok {
				Render(c, http.StatusOK, templateName, hData)
				return
			}
		}
	}

	result, err := h.contrib.Search(query, page)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if query != "" {
		h.db.Create(&models.SearchLog{
			Query:     query,
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
	}

	rows := make([]ContributionRow, len(result.Items))
	for i, item := range result.Items {
		rows[i] = ContributionRow{
			ContributionView: item,
			IDHTML:           utils.HighlightKeywords(fmt.Sprintf("%d", item.ID), result.Keywords),
			ContributorHTML:  utils.HighlightKeywords(item.DisplayContributor, result.Keywords),
			BodyHTML:         utils.HighlightKeywords(item.Body, result.Keywords),
			TimeHTML:         utils.HighlightKeywords(item.FormattedTime(), result.Keywords),
		}
	}

	renderData := gin.H{
		"Contributions": rows,
		"Page":          result.Page,
		"HasMore":       result.HasMore,
		"Total":         result.Total,
		"SearchQuery":   query,
		"Keywords":      result.Keywords,
		"Title":         "Contributions",
	}

	if query == "" {
		utils.Pages().Put(cacheKey, renderData, 1*time.Minute)
	}

	Render(c, http.StatusOK, templateName, renderData)
}
