package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templatesFS embed.FS

// Templates parses the embedded HTML templates for the submission form.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// RegisterFormPage serves the submission form at the group root. The form
// posts to the check endpoint and renders the response client-side.
func RegisterFormPage(group *gin.RouterGroup) {
	group.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{})
	})
}
