package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/gorm"
)

type DownloadHandler struct {
	db           *gorm.DB
	resourcesDir string
}

func NewDownloadHandler(db *gorm.DB, resourcesDir string) *DownloadHandler {
	return &DownloadHandler{db: db, resourcesDir: resourcesDir}
}

// Serve sends one file from the resources directory and records the
// download. Only plain filenames are accepted: anything with a path
// separator is rejected before touching the filesystem.
func (h *DownloadHandler) Serve(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || filename != filepath.Base(filename) {
		RenderError(c, http.StatusBadRequest, "Nom de fichier invalide")
		return
	}

	path := filepath.Join(h.resourcesDir, filename)
	if _, err := os.Stat(path); err != nil {
		RenderError(c, http.StatusNotFound, "Fichier introuvable")
		return
	}

	h.db.Create(&models.DownloadLog{
		Filename:  filename,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.FileAttachment(path, filename)
}
