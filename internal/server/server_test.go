package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
  <rect width="10" height="10" fill="#FF0000"/>
</svg>`

func newTestServer(t *testing.T, maxFiles int) *Server {
	t.Helper()
	s, err := New(Config{UploadDir: t.TempDir(), MaxFiles: maxFiles}, nil)
	require.NoError(t, err)
	return s
}

type uploadFile struct {
	name string
	data []byte
}

func postUpload(t *testing.T, s *Server, files []uploadFile) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) UploadResponse {
	t.Helper()
	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestIndexServesUploadPage(t *testing.T) {
	s := newTestServer(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Color Detection")
}

func TestUploadSVG(t *testing.T) {
	s := newTestServer(t, 0)

	rec := postUpload(t, s, []uploadFile{{"logo.svg", []byte(redSVG)}})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Len(t, resp.Results, 1)

	r := resp.Results[0]
	assert.Equal(t, "logo.svg", r.Filename)
	assert.Empty(t, r.Error)
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, []string{"#FF0000"}, r.Colors)
	assert.True(t, strings.HasPrefix(r.Preview, "data:image/svg+xml;base64,"),
		"preview should embed the original SVG, got %q", r.Preview[:min(len(r.Preview), 40)])
	assert.True(t, strings.HasPrefix(r.Palette, "data:image/png;base64,"),
		"palette should be a PNG data URI")
}

func TestUploadUnsupportedFileContinuesBatch(t *testing.T) {
	s := newTestServer(t, 0)

	rec := postUpload(t, s, []uploadFile{
		{"notes.txt", []byte("hello")},
		{"logo.svg", []byte(redSVG)},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Len(t, resp.Results, 2)

	assert.Contains(t, resp.Results[0].Error, "Unsupported file type")
	assert.Contains(t, resp.Results[0].Error, ".txt")

	assert.Empty(t, resp.Results[1].Error)
	assert.Equal(t, 1, resp.Results[1].Count)
}

func TestUploadCorruptFileContinuesBatch(t *testing.T) {
	s := newTestServer(t, 0)

	rec := postUpload(t, s, []uploadFile{
		{"broken.png", []byte("not a png")},
		{"logo.svg", []byte(redSVG)},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.Len(t, resp.Results, 2)
	assert.NotEmpty(t, resp.Results[0].Error)
	assert.Empty(t, resp.Results[1].Error)
}

func TestUploadNoFiles(t *testing.T) {
	s := newTestServer(t, 0)

	rec := postUpload(t, s, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no files")
}

func TestUploadTooManyFiles(t *testing.T) {
	s := newTestServer(t, 2)

	rec := postUpload(t, s, []uploadFile{
		{"a.svg", []byte(redSVG)},
		{"b.svg", []byte(redSVG)},
		{"c.svg", []byte(redSVG)},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many files")
}
