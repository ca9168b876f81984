// Package server exposes a treebank over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/treeproc/config"
	"github.com/dhamidi/treeproc/format"
	"github.com/dhamidi/treeproc/tree"
	"github.com/dhamidi/treeproc/treebank"
)

var log = commonlog.GetLogger("treeproc.server")

// maxBodySize bounds the body of POST /trees.
const maxBodySize = 32 << 20

type Server struct {
	bank          *treebank.Bank
	skipTerminals bool
	mux           *http.ServeMux
}

type Option func(*Server)

// SkipTerminals sets the default of the skipTerminals query parameter.
func SkipTerminals(skip bool) Option {
	return func(s *Server) {
		s.skipTerminals = skip
	}
}

func New(bank *treebank.Bank, opts ...Option) *Server {
	s := &Server{
		bank:          bank,
		skipTerminals: true,
		mux:           http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("POST /trees", s.handleAddTrees)
	s.mux.HandleFunc("GET /trees", s.handleListTrees)
	s.mux.HandleFunc("GET /trees/{id}", s.handleGetTree)
	s.mux.HandleFunc("GET /trees/{id}/cfg", s.handleTreeCFG)
	s.mux.HandleFunc("GET /trees/{id}/relations/{kind}", s.handleRelation)
	s.mux.HandleFunc("GET /grammar/cfg", s.handleGrammarCFG)
	s.mux.HandleFunc("GET /grammar/ebnf", s.handleGrammarEBNF)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	log.Debugf("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      s,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on http://%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Summary describes a stored tree without its relations.
type Summary struct {
	ID    string `json:"id"`
	Line  int    `json:"line,omitempty"`
	Tree  string `json:"tree"`
	Nodes int    `json:"nodes"`
}

func summarize(e *treebank.Entry) Summary {
	return Summary{
		ID:    e.ID.String(),
		Line:  e.Line,
		Tree:  e.Tree.String(),
		Nodes: e.Tree.Len(),
	}
}

type addResponse struct {
	Trees  []Summary `json:"trees"`
	Errors []string  `json:"errors,omitempty"`
}

func (s *Server) handleAddTrees(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	entries, err := s.bank.Load(r.Context(), body)

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	resp := addResponse{Trees: make([]Summary, 0, len(entries))}
	for _, e := range entries {
		resp.Trees = append(resp.Trees, summarize(e))
	}
	for _, lineErr := range splitErrors(err) {
		resp.Errors = append(resp.Errors, lineErr.Error())
	}

	status := http.StatusCreated
	if len(entries) == 0 && err != nil {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	entries := s.bank.Entries()
	list := make([]Summary, 0, len(entries))
	for _, e := range entries {
		list = append(list, summarize(e))
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	skip, err := s.skipParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, format.NewDocument(entry, skip))
}

func (s *Server) handleTreeCFG(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}
	skip, err := s.skipParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeText(w, entry.Tree.CFG(skip))
}

type relationResponse struct {
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Holds bool   `json:"holds"`
}

func (s *Server) handleRelation(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entry(w, r)
	if !ok {
		return
	}

	kind := r.PathValue("kind")
	var holds func(x, y int) bool
	if kind == "in-scope" {
		holds = entry.Tree.IsInScope
	} else if rel, ok := tree.ParseRelation(kind); ok {
		holds = func(x, y int) bool { return entry.Tree.HasRelation(x, y, rel) }
	} else {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown relation %q", kind))
		return
	}

	x, err := intParam(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := intParam(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, relationResponse{Kind: kind, X: x, Y: y, Holds: holds(x, y)})
}

func (s *Server) handleGrammarCFG(w http.ResponseWriter, r *http.Request) {
	skip, err := s.skipParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeText(w, s.bank.CFG(skip))
}

func (s *Server) handleGrammarEBNF(w http.ResponseWriter, r *http.Request) {
	text, err := s.bank.EBNF(r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), EBNF: text})
		return
	}
	writeText(w, text)
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*treebank.Entry, bool) {
	id := r.PathValue("id")
	entry, ok := s.bank.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("tree %q not found", id))
		return nil, false
	}
	return entry, true
}

func (s *Server) skipParam(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("skipTerminals")
	if v == "" {
		return s.skipTerminals, nil
	}
	skip, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid skipTerminals %q", v)
	}
	return skip, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// splitErrors flattens errors.Join output into its parts.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
