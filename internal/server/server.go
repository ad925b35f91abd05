// Package server hosts the local development loop: regenerate artifacts on
// demand and serve them with the current metrics and validation state.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/analytics"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/export"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/model"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/validation"
)

// Server is the local development server.
type Server struct {
	projectPath string
	port        int

	mu      sync.Mutex
	metrics *analytics.Metrics
	report  *validation.Report
	outputs *export.Outputs
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
	}
}

// Start launches the HTTP server. The out/ directory is served so the GLB
// and SVG artifacts can be loaded straight into a viewer.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.Handle("GET /out/", http.StripPrefix("/out/", http.FileServer(http.Dir(s.outDir()))))
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("hexhome server starting on http://localhost%s", addr)
	log.Printf("Project: %s", s.projectPath)

	return http.ListenAndServe(addr, mux)
}

func (s *Server) outDir() string {
	return filepath.Join(s.projectPath, "out")
}

// regenerate runs the full pipeline and caches the results.
func (s *Server) regenerate() error {
	cfg, err := config.LoadProject(s.projectPath)
	if err != nil {
		return err
	}

	report := validation.ValidateParams(cfg)
	if !report.Valid {
		s.setState(nil, report, nil)
		return fmt.Errorf("parameters have validation errors: %s", report.Summary)
	}

	g, err := plan.Build(cfg)
	if err != nil {
		return err
	}
	report.Merge(plan.Validate(g, cfg))
	if !report.Valid {
		s.setState(nil, report, nil)
		return fmt.Errorf("geometry validation failed: %s", report.Summary)
	}

	metrics := analytics.Measure(g, cfg)
	mesh, err := model.Build(g, cfg)
	if err != nil {
		s.setState(metrics, report, nil)
		return err
	}

	outDir := s.outDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outputs := export.Outputs{
		PlanSVG:    filepath.Join(outDir, "plan.svg"),
		MassingGLB: filepath.Join(outDir, "massing.glb"),
		SummaryTXT: filepath.Join(outDir, "summary.txt"),
	}
	if err := export.WriteSVG(g, outputs.PlanSVG, cfg, metrics); err != nil {
		return err
	}
	if err := export.WriteGLB(mesh, outputs.MassingGLB, cfg.GLBRotateXDeg, cfg.FeetToMeters); err != nil {
		return err
	}
	if err := export.WriteSummary(outputs.SummaryTXT, cfg, metrics, outputs); err != nil {
		return err
	}

	s.setState(metrics, report, &outputs)
	return nil
}

func (s *Server) setState(m *analytics.Metrics, r *validation.Report, o *export.Outputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
	s.report = r
	s.outputs = o
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Hexagon Home</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Hexagon Home</h1>
<p>POST /api/generate to rebuild, then load <code>/out/massing.glb</code> in a glTF viewer or open <code>/out/plan.svg</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	metrics := s.metrics
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if metrics == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "no generation has run yet"})
		return
	}
	json.NewEncoder(w).Encode(metrics)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	report := s.report
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if report == nil {
		json.NewEncoder(w).Encode(validation.NewReport())
		return
	}
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleGenerate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.regenerate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "error": err.Error()})
		return
	}

	s.mu.Lock()
	outputs := s.outputs
	s.mu.Unlock()

	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"outputs": outputs,
	})
}
