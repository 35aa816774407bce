//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package inspect provides the design-time HTTP surface of the resolution
// engine. The visual editor registers graph snapshots and queries producer
// lists, addressable variables, active edges, and the operator catalog.
package inspect

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-flow-go/condition"
	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
	"trpc.group/trpc-go/trpc-flow-go/output/inmemory"
	"trpc.group/trpc-go/trpc-flow-go/registry"
	"trpc.group/trpc-go/trpc-flow-go/resolve"
)

const instrumentName = "trpc.group/trpc-go/trpc-flow-go/server/inspect"

// Server serves the inspection API over a registry and an output store.
type Server struct {
	reg    *registry.Registry
	store  output.Store
	router *mux.Router
	tracer trace.Tracer

	resolverOpts []resolve.Option

	mu        sync.RWMutex
	graphs    map[string]*graph.Graph
	resolvers map[string]*resolve.Resolver
}

// Option configures the Server instance.
type Option func(*Server)

// WithStore provides the output store backing live previews. If omitted, an
// in-memory store is used.
func WithStore(store output.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithResolverOptions appends resolver options applied to every registered
// graph (e.g., resolve.WithMaxArrayItems).
func WithResolverOptions(opts ...resolve.Option) Option {
	return func(s *Server) { s.resolverOpts = append(s.resolverOpts, opts...) }
}

// New creates an inspection server over the given node-type registry.
func New(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		reg:       reg,
		store:     inmemory.New(),
		router:    mux.NewRouter(),
		tracer:    otel.Tracer(instrumentName),
		graphs:    make(map[string]*graph.Graph),
		resolvers: make(map[string]*resolve.Resolver),
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/operators", s.handleListOperators).Methods(http.MethodGet)
	s.router.HandleFunc("/api/conditions/validate", s.handleValidateCondition).Methods(http.MethodPost)
	s.router.HandleFunc("/api/graphs", s.handleRegisterGraph).Methods(http.MethodPost)
	s.router.HandleFunc("/api/graphs/{graphID}/preview", s.handlePreview).Methods(http.MethodGet)
	s.router.HandleFunc("/api/graphs/{graphID}/nodes/{nodeID}/producers", s.handleProducers).Methods(http.MethodGet)
	s.router.HandleFunc("/api/graphs/{graphID}/nodes/{nodeID}/variables", s.handleVariables).Methods(http.MethodGet)
	s.router.HandleFunc("/api/graphs/{graphID}/nodes/{nodeID}/active-edges", s.handleActiveEdges).Methods(http.MethodGet)
}

// RegisterGraph registers a graph snapshot and returns its ID. The graph
// must pass structural validation.
func (s *Server) RegisterGraph(g *graph.Graph) (string, []graph.Diagnostic) {
	g.EnsureIDs()
	if diags := graph.Validate(g, s.reg); len(diags) > 0 {
		return "", diags
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[g.ID] = g
	s.resolvers[g.ID] = resolve.New(g, s.reg, s.resolverOpts...)
	return g.ID, nil
}

func (s *Server) resolver(graphID string) (*resolve.Resolver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resolvers[graphID]
	return r, ok
}

func (s *Server) handleListOperators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, condition.Catalog)
}

func (s *Server) handleValidateCondition(w http.ResponseWriter, r *http.Request) {
	var cond condition.Condition
	if err := json.NewDecoder(r.Body).Decode(&cond); err != nil {
		writeError(w, http.StatusBadRequest, "invalid condition payload: "+err.Error())
		return
	}
	resp := map[string]any{"valid": true, "label": condition.FormatLabel(cond)}
	if err := condition.Validate(cond); err != nil {
		resp["valid"] = false
		resp["error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterGraph(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid graph payload: "+err.Error())
		return
	}
	id, diags := s.RegisterGraph(&g)
	if len(diags) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"diagnostics": diags})
		return
	}
	log.Infof("inspect: registered graph %s (%d nodes, %d edges)", id, len(g.Nodes), len(g.Edges))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleProducers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	_, span := s.tracer.Start(r.Context(), "inspect.producers",
		trace.WithAttributes(attribute.String("graph.id", vars["graphID"]), attribute.String("node.id", vars["nodeID"])))
	defer span.End()

	res, ok := s.resolver(vars["graphID"])
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	producers := res.Producers(vars["nodeID"])
	writeJSON(w, http.StatusOK, map[string]any{"producers": producers})
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, span := s.tracer.Start(r.Context(), "inspect.variables",
		trace.WithAttributes(attribute.String("graph.id", vars["graphID"]), attribute.String("node.id", vars["nodeID"])))
	defer span.End()

	res, ok := s.resolver(vars["graphID"])
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	variables, err := res.Variables(ctx, vars["nodeID"], s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"variables": variables})
}

func (s *Server) handleActiveEdges(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, span := s.tracer.Start(r.Context(), "inspect.active_edges",
		trace.WithAttributes(attribute.String("graph.id", vars["graphID"]), attribute.String("node.id", vars["nodeID"])))
	defer span.End()

	res, ok := s.resolver(vars["graphID"])
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	active, err := res.ActiveEdges(ctx, vars["nodeID"], s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active_edges": active})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, span := s.tracer.Start(r.Context(), "inspect.preview",
		trace.WithAttributes(attribute.String("graph.id", vars["graphID"])))
	defer span.End()

	res, ok := s.resolver(vars["graphID"])
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	previews, err := res.PreviewAll(ctx, s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"previews": previews})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("inspect: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
