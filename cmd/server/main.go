package main

import (
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/plfelter/verbatims-utn-vdl/internal/config"
	"github.com/plfelter/verbatims-utn-vdl/internal/db"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"github.com/plfelter/verbatims-utn-vdl/internal/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := config.Load()

	database, err := db.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	r := gin.Default()

	// Sessions carry the analyse-chat session id
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("verbatims_session", store))

	// Load templates using multitemplate to allow handler-friendly names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static assets
	r.Static("/static", "./web/static")

	router.RegisterRoutes(r, database, cfg)

	log.Printf("Verbatims server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble a view with the shared layout and includes
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"formatTime": func(t time.Time) string {
			return t.Format(models.TimeLayout)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Full pages
	r.AddFromFilesFuncs("contributions.html", funcMap, assemble(templatesDir+"/views/contributions.html")...)
	r.AddFromFilesFuncs("discussion.html", funcMap, assemble(templatesDir+"/views/discussion.html")...)
	r.AddFromFilesFuncs("analyse.html", funcMap, assemble(templatesDir+"/views/analyse.html")...)
	r.AddFromFilesFuncs("confirm.html", funcMap, assemble(templatesDir+"/views/confirm.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	// HTMX partials render without the layout
	r.AddFromFilesFuncs("contributions_content.html", funcMap,
		templatesDir+"/includes/contributions_content.html")
	r.AddFromFilesFuncs("discussion_content.html", funcMap,
		templatesDir+"/includes/discussion_content.html",
		templatesDir+"/includes/comment_partial.html")
	r.AddFromFilesFuncs("comment_partial.html", funcMap,
		templatesDir+"/includes/comment_partial.html")
	r.AddFromFilesFuncs("analyse_content.html", funcMap,
		templatesDir+"/includes/analyse_content.html")

	return r
}
