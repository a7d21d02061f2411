package server

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

//go:embed upload.html
var uploadPage []byte

// Config holds the serving-layer settings. Zero values select the defaults.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// UploadDir is where uploads are staged while being processed.
	UploadDir string

	// MaxFiles caps how many files one /upload request may carry.
	MaxFiles int
}

// Server wires the detection engine to the HTTP routes.
type Server struct {
	cfg    Config
	log    hclog.Logger
	engine *gin.Engine
}

// New builds a Server, creating the upload directory if needed.
func New(cfg Config, logger hclog.Logger) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 100
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{cfg: cfg, log: logger, engine: engine}
	engine.GET("/", s.handleIndex)
	engine.POST("/upload", s.handleUpload)
	return s, nil
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.log.Info("listening", "addr", s.cfg.Addr, "upload_dir", s.cfg.UploadDir)
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", uploadPage)
}
