package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPHandler serves the /api/files routes.
type HTTPHandler struct {
	Service        *UploadService
	MaxUploadBytes int64
}

func NewHTTPHandler(service *UploadService, maxUploadBytes int64) *HTTPHandler {
	return &HTTPHandler{Service: service, MaxUploadBytes: maxUploadBytes}
}

// Register mounts the file routes on group.
func (h *HTTPHandler) Register(group *gin.RouterGroup) {
	group.POST("", h.Upload)
	group.GET("/:key", h.Download)
	group.DELETE("/:key", h.Delete)
}

// base64Upload is the JSON upload body: the file travels base64 encoded.
type base64Upload struct {
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	FileContent string `json:"fileContent"`
}

// ReadUpload extracts a file from either a multipart "file" field or a JSON
// base64 body.
func ReadUpload(c *gin.Context, maxBytes int64) (name, mimeType string, content []byte, err error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	if c.ContentType() == gin.MIMEJSON {
		var body base64Upload
		if err := c.ShouldBindJSON(&body); err != nil {
			return "", "", nil, fmt.Errorf("invalid upload body: %w", err)
		}
		if body.FileName == "" || body.FileContent == "" {
			return "", "", nil, fmt.Errorf("missing required fields: fileName, fileContent")
		}
		content, err := base64.StdEncoding.DecodeString(body.FileContent)
		if err != nil {
			return "", "", nil, fmt.Errorf("fileContent is not valid base64: %w", err)
		}
		return body.FileName, body.MimeType, content, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return "", "", nil, fmt.Errorf("file is required: %w", err)
	}
	f, err := header.Open()
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	content, err = io.ReadAll(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return header.Filename, header.Header.Get("Content-Type"), content, nil
}

func (h *HTTPHandler) Upload(c *gin.Context) {
	name, mimeType, content, err := ReadUpload(c, h.MaxUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata, err := h.Service.Upload(c.Request.Context(), name, mimeType, content)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, metadata)
}

func (h *HTTPHandler) Download(c *gin.Context) {
	file, err := h.Service.Fetch(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.Name}))
	c.Data(http.StatusOK, file.MimeType, file.Data)
}

func (h *HTTPHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	default:
		slog.ErrorContext(c.Request.Context(), "storage request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage request failed"})
	}
}
