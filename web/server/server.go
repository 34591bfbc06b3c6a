package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits for interactive renders
const (
	MaxImageSize       = 2000
	MaxSamplesPerPixel = 10000
	MaxDepth           = 1000
)

// DefaultTileSize is the tile edge used for streamed renders
const DefaultTileSize = 32

// Server exposes scene listing, inspection and streamed rendering over HTTP
type Server struct {
	port     int
	sceneDir string
	logger   core.Logger
}

// NewServer creates a new web server. sceneDir is scanned for JSON scene files.
func NewServer(port int, sceneDir string, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{port: port, sceneDir: sceneDir, logger: logger}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting web server on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := scene.ListAllScenes(s.sceneDir, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleSceneConfig returns the sampling defaults of a scene and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	flags, err := s.sceneFlags(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg, _, err := config.Build(config.Default(), flags)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":           cfg.Width,
			"height":          cfg.Height,
			"samplesPerPixel": cfg.SamplesPerPixel,
			"maxDepth":        cfg.MaxDepth,
			"gamma":           cfg.Gamma,
			"seed":            cfg.Seed,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 1, "max": MaxImageSize},
			"height":          map[string]int{"min": 1, "max": MaxImageSize},
			"samplesPerPixel": map[string]int{"min": 1, "max": MaxSamplesPerPixel},
			"maxDepth":        map[string]int{"min": 0, "max": MaxDepth},
		},
	})
}

// sceneFlags maps a scene ID from the listing to config flags.
// File scene IDs are resolved against the scene directory only.
func (s *Server) sceneFlags(sceneID string) (config.Flags, error) {
	flags := config.Flags{MaxDepth: config.Unset, Seed: config.Unset}
	if !strings.HasPrefix(sceneID, "file:") {
		flags.Scene = sceneID
		return flags, nil
	}

	infos, err := scene.ListFileScenes(s.sceneDir, s.logger)
	if err != nil {
		return flags, err
	}
	for _, info := range infos {
		if info.ID == sceneID {
			flags.SceneFile = info.FilePath
			return flags, nil
		}
	}
	return flags, fmt.Errorf("%w: %q", scene.ErrUnknownScene, sceneID)
}

// parseRenderRequest builds a validated render config from the query
func (s *Server) parseRenderRequest(r *http.Request) (config.RenderConfig, *scene.Scene, error) {
	query := r.URL.Query()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	flags, err := s.sceneFlags(sceneID)
	if err != nil {
		return config.RenderConfig{}, nil, err
	}

	if flags.Width, err = parseIntParam(query, "width", 0, 1, MaxImageSize); err != nil {
		return config.RenderConfig{}, nil, err
	}
	if flags.Height, err = parseIntParam(query, "height", 0, 1, MaxImageSize); err != nil {
		return config.RenderConfig{}, nil, err
	}
	if flags.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, MaxSamplesPerPixel); err != nil {
		return config.RenderConfig{}, nil, err
	}
	if flags.MaxDepth, err = parseIntParam(query, "depth", config.Unset, 0, MaxDepth); err != nil {
		return config.RenderConfig{}, nil, err
	}
	if flags.Gamma, err = parseFloatParam(query, "gamma", 0, 0.1, 10); err != nil {
		return config.RenderConfig{}, nil, err
	}
	seed, err := parseIntParam(query, "seed", config.Unset, 0, int(^uint32(0)>>1))
	if err != nil {
		return config.RenderConfig{}, nil, err
	}
	flags.Seed = int64(seed)

	cfg, sc, err := config.Build(config.Default(), flags)
	if err != nil {
		return config.RenderConfig{}, nil, err
	}
	if cfg.Width > MaxImageSize || cfg.Height > MaxImageSize {
		return config.RenderConfig{}, nil, fmt.Errorf("image size %dx%d exceeds %d", cfg.Width, cfg.Height, MaxImageSize)
	}

	if cfg.Width*cfg.Height > 800*600 && cfg.SamplesPerPixel > 100 {
		s.logger.Warningf("Large image with high samples may render slowly")
	}
	return cfg, sc, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
