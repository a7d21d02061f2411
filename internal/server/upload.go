package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ironsheep/logo-colors/internal/convert"
	"github.com/ironsheep/logo-colors/internal/detect"
	"github.com/ironsheep/logo-colors/internal/palette"
)

// FileResult is one entry of the /upload response. Either Error is set, or
// the detection fields are.
type FileResult struct {
	Filename string   `json:"filename"`
	Count    int      `json:"count"`
	Colors   []string `json:"colors,omitempty"`
	Preview  string   `json:"preview,omitempty"`
	Palette  string   `json:"palette,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// UploadResponse is the /upload response body.
type UploadResponse struct {
	Results []FileResult `json:"results"`
}

func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}
	if len(files) > s.cfg.MaxFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many files: %d uploaded, maximum is %d", len(files), s.cfg.MaxFiles),
		})
		return
	}

	results := make([]FileResult, 0, len(files))
	for _, fh := range files {
		results = append(results, s.processFile(c, fh))
	}

	c.JSON(http.StatusOK, UploadResponse{Results: results})
}

// processFile stages one upload, detects its colors, and builds previews.
// Failures are folded into the result entry so the batch keeps going.
func (s *Server) processFile(c *gin.Context, fh *multipart.FileHeader) FileResult {
	name := filepath.Base(fh.Filename)
	result := FileResult{Filename: name}

	ext := strings.ToLower(filepath.Ext(name))
	if !detect.Supported(name) {
		result.Error = fmt.Sprintf("Unsupported file type %q. Supported: %s",
			ext, strings.Join(detect.SupportedExtensions(), ", "))
		return result
	}

	// Unique staging name so concurrent uploads of the same filename
	// cannot collide.
	staged := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"-"+name)
	if err := c.SaveUploadedFile(fh, staged); err != nil {
		s.log.Warn("failed to stage upload", "file", name, "error", err)
		result.Error = "failed to store uploaded file"
		return result
	}
	defer os.Remove(staged)

	detection, err := detect.Detect(staged)
	if err != nil {
		s.log.Warn("detection failed", "file", name, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Count = detection.Count
	result.Colors = detection.Colors
	result.Preview = s.preview(staged, ext)
	result.Palette = renderPalette(detection.Colors)
	return result
}

// preview builds a base64 data URI for the uploaded file. SVG and common
// raster formats embed the original bytes; AI/EPS are rasterized first and
// fall back to the raw bytes when conversion fails.
func (s *Server) preview(path, ext string) string {
	switch ext {
	case ".ai", ".eps":
		converted, err := convert.ToRaster(path)
		if err == nil {
			defer os.Remove(converted)
			if data, readErr := os.ReadFile(converted); readErr == nil {
				return dataURI("image/png", data)
			}
		}
		s.log.Warn("preview conversion failed, embedding original bytes", "file", path, "error", err)
		if data, readErr := os.ReadFile(path); readErr == nil {
			return dataURI("application/octet-stream", data)
		}
		return ""
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("failed to read upload for preview", "file", path, "error", err)
			return ""
		}
		return dataURI(previewMime(ext), data)
	}
}

func previewMime(ext string) string {
	switch ext {
	case ".svg":
		return "image/svg+xml"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// renderPalette draws the swatch strip; an unrenderable palette (e.g. only
// named colors) just omits the field.
func renderPalette(colors []string) string {
	img, err := palette.Render(colors, palette.SwatchSize)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return dataURI("image/png", buf.Bytes())
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
