package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"artbook_backend/internal/storage"
	"artbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler раздает файлы из локального хранилища. Портфолио
// публичное, поэтому аутентификация здесь не нужна.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// ServeFile отдает файл по пути внутри хранилища
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	reader, err := h.storage.Get(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	if size, err := h.storage.GetSize(c.Request.Context(), path); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Header("Cache-Control", "public, max-age=31536000")

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	} else {
		c.Header("Content-Disposition", "inline")
	}

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Заголовки уже ушли, ответить ошибкой нельзя
		c.Error(err)
	}
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	if size, err := h.storage.GetSize(c.Request.Context(), path); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(http.StatusOK)
}
