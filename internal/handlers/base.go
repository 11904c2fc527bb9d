package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables shared by every page.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// IsHtmx reports whether the request came from HTMX, in which case
// handlers answer with a content partial instead of the full page.
func IsHtmx(c *gin.Context) bool {
	return c.GetHeader("HX-Request") != ""
}

// HtmxRedirect asks the HTMX client to navigate.
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// idParam reads the :id path parameter; 0 on malformed input, which no
// stored row carries.
func idParam(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// pageQuery reads the page query parameter, defaulting to the first page.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
