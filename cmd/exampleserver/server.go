package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logrus "github.com/sirupsen/logrus"

	"assetprov/core"
)

// Server exposes a read-mostly HTTP API over a ResourceService: a thin
// router plus JSON handlers, no templating or GUI assets.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	svc        *ResourceService
	log        *logrus.Logger
}

// NewServer constructs the router and HTTP server bound to addr. promReg
// may be nil to skip the /metrics endpoint.
func NewServer(addr string, svc *ResourceService, promReg *prometheus.Registry, log *logrus.Logger) *Server {
	s := &Server{router: chi.NewRouter(), svc: svc, log: log}
	s.routes(promReg)
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	return s
}

func (s *Server) Start() error { return s.httpServer.ListenAndServe() }

func (s *Server) routes(promReg *prometheus.Registry) {
	s.router.Use(loggingMiddleware(s.log))
	s.router.Get("/api/info", s.handleInfo)
	s.router.Post("/api/resources", s.handleDeriveIdentifier)
	s.router.Get("/api/resources/{id}", s.handleGetBundle)
	s.router.Get("/api/resources/{id}/view", s.handleSelectiveView)
	s.router.Post("/api/resources/{id}/register", s.handleRegister)
	if promReg != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Info())
}

type deriveRequest struct {
	ResourceType string                 `json:"resourceType"`
	Attributes   map[string]interface{} `json:"attributes"`
	Owner        string                 `json:"owner"`
}

func (s *Server) handleDeriveIdentifier(w http.ResponseWriter, r *http.Request) {
	var req deriveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, core.NewFailure(err))
		return
	}
	id, err := s.svc.DeriveIdentifier(core.ResourceType(req.ResourceType), req.Attributes, req.Owner)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, core.NewFailure(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"identifier": id.String()})
}

func (s *Server) handleGetBundle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := s.svc.Bundle(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, core.NewFailure(err))
		return
	}
	writeJSON(w, http.StatusOK, b.IntegratedView())
}

type registerRequest struct {
	Owner string `json:"owner"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req registerRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	tx, err := s.svc.Register(r.Context(), id, req.Owner)
	if err != nil {
		writeJSON(w, http.StatusNotFound, core.NewFailure(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction":  tx.ID,
		"contentId":    tx.ContentID.CID,
		"metadataHash": tx.MetadataHash,
	})
}

func (s *Server) handleSelectiveView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := s.svc.Bundle(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, core.NewFailure(err))
		return
	}
	writeJSON(w, http.StatusOK, b.SelectiveView(core.LayerIdentity, core.LayerProvenance))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
