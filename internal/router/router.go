package router

import (
	"github.com/dchest/captcha"
	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/config"
	"github.com/plfelter/verbatims-utn-vdl/internal/handlers"
	"github.com/plfelter/verbatims-utn-vdl/internal/services"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler. Services are built here so the
// config values (anonymization toggle, voting flag) are threaded in
// exactly once.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	anon := services.NewAnonymizer(cfg.AnonymizeContributors)
	mailService := services.NewMailService(cfg)
	contribService := services.NewContributionService(db, anon)
	discussionService := services.NewDiscussionService(db, mailService, cfg.VotingEnabled)
	captchaService := services.NewCaptchaService()
	analyseService := services.NewAnalyseService(cfg)

	contribHandler := handlers.NewContributionHandler(db, contribService)
	discussionHandler := handlers.NewDiscussionHandler(discussionService, captchaService)
	voteHandler := handlers.NewVoteHandler(discussionService)
	analyseHandler := handlers.NewAnalyseHandler(db, analyseService)
	downloadHandler := handlers.NewDownloadHandler(db, cfg.ResourcesDir)

	// Contributions: full page plus HTMX search / load-more partials
	r.GET("/", contribHandler.Index)
	r.GET("/contributions", contribHandler.List)
	r.GET("/get-contributions", contribHandler.Content)
	r.POST("/get-contributions", contribHandler.Content)

	// Discussion board
	r.GET("/discussion", discussionHandler.List)
	r.POST("/discussion", discussionHandler.Create)
	r.POST("/comment/:id/answer", discussionHandler.CreateAnswer)
	r.GET("/confirm/:type/:id/:token", discussionHandler.Confirm)

	r.POST("/comment/:id/upvote", voteHandler.Upvote)
	r.POST("/comment/:id/downvote", voteHandler.Downvote)

	// Analyse chat panel
	r.GET("/analyse", analyseHandler.Show)
	r.POST("/analyse", analyseHandler.Ask)

	// File downloads (logged)
	r.GET("/download/:filename", downloadHandler.Serve)

	// Captcha images for the discussion forms
	r.GET("/captcha/:file", gin.WrapH(captcha.Server(captcha.StdWidth, captcha.StdHeight)))
}
