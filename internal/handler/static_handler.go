package handler

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

var iconContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// StaticHandler serves bundled icons instead of proxying them.
type StaticHandler struct {
	icons fs.FS
}

func NewStaticHandler() *StaticHandler {
	icons, err := fs.Sub(staticFS, "static/icons")
	if err != nil {
		panic(err)
	}
	return &StaticHandler{icons: icons}
}

// Icon serves one embedded icon.
// GET /icons/*filepath
func (h *StaticHandler) Icon(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	if name == "" || !fs.ValidPath(name) {
		c.Status(http.StatusNotFound)
		return
	}
	content, err := fs.ReadFile(h.icons, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Content-Length", strconv.Itoa(len(content)))
	c.Data(http.StatusOK, iconContentType(name), content)
}

func iconContentType(name string) string {
	if ct, ok := iconContentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Health is the liveness probe.
// GET /health
// GET /actuator/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
