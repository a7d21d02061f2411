package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/logo-colors/internal/detect"
	"github.com/ironsheep/logo-colors/internal/palette"
	"github.com/ironsheep/logo-colors/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:          "logo-colors",
	Short:        "Detect the distinct colors of logo files",
	Version:      Version,
	SilenceUsage: true,
}

var (
	serveAddr      string
	serveUploadDir string
	serveMaxFiles  int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload server",
		RunE:  runServe,
	}
)

var (
	detectJSON   bool
	detectSwatch string

	detectCmd = &cobra.Command{
		Use:   "detect FILE...",
		Short: "Detect colors in one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDetect,
	}
)

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"logo-colors %s\n  Build time: %s\n  Git commit: %s\n",
		Version, BuildTime, GitCommit))

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8000)")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "upload staging directory (default uploads)")
	serveCmd.Flags().IntVar(&serveMaxFiles, "max-files", 0, "max files per upload request (default 100)")

	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print machine-readable JSON")
	detectCmd.Flags().StringVar(&detectSwatch, "swatch", "", "write a palette swatch PNG to PATH (single file only)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(detectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "logo-colors",
		Level:  hclog.LevelFromString(envOr("LOGO_COLORS_LOG_LEVEL", "info")),
		Output: os.Stderr,
	})
}

// envOr reads an environment variable with a fallback. A .env file, when
// present, is loaded before any lookup; flags still win over both.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := server.Config{
		Addr:      envOr("LOGO_COLORS_ADDR", ""),
		UploadDir: envOr("LOGO_COLORS_UPLOAD_DIR", ""),
	}
	if v := os.Getenv("LOGO_COLORS_MAX_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOGO_COLORS_MAX_FILES %q: %w", v, err)
		}
		cfg.MaxFiles = n
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("upload-dir") {
		cfg.UploadDir = serveUploadDir
	}
	if cmd.Flags().Changed("max-files") {
		cfg.MaxFiles = serveMaxFiles
	}

	logger := newLogger()
	logger.Info("starting", "version", Version, "commit", GitCommit)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	return srv.Run()
}

func runDetect(cmd *cobra.Command, args []string) error {
	if detectSwatch != "" && len(args) != 1 {
		return fmt.Errorf("--swatch requires exactly one input file")
	}

	type fileReport struct {
		Filename string   `json:"filename"`
		Count    int      `json:"count,omitempty"`
		Colors   []string `json:"colors,omitempty"`
		Error    string   `json:"error,omitempty"`
	}

	var reports []fileReport
	failed := false
	for _, path := range args {
		report := fileReport{Filename: path}
		result, err := detect.Detect(path)
		if err != nil {
			report.Error = err.Error()
			failed = true
		} else {
			report.Count = result.Count
			report.Colors = result.Colors
		}
		reports = append(reports, report)
	}

	if detectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Error != "" {
				fmt.Printf("%s: error: %s\n", r.Filename, r.Error)
				continue
			}
			fmt.Printf("%s: %d colors\n", r.Filename, r.Count)
			for _, c := range r.Colors {
				fmt.Printf("  %s\n", c)
			}
		}
	}

	if detectSwatch != "" && reports[0].Error == "" {
		if err := writeSwatch(reports[0].Colors, detectSwatch); err != nil {
			return err
		}
	}

	if failed {
		return fmt.Errorf("detection failed for one or more files")
	}
	return nil
}

func writeSwatch(colors []string, path string) error {
	img, err := palette.Render(colors, palette.SwatchSize)
	if err != nil {
		return fmt.Errorf("failed to render swatch: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to write swatch: %w", err)
	}
	return nil
}
