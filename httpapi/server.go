// Package httpapi exposes games held in a store over a JSON HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	chess "github.com/chesscore/rules"
	"github.com/chesscore/rules/image"
	"github.com/chesscore/rules/store"
)

const maxJSONBodyBytes int64 = 1 << 16

var lastMoveColor = color.RGBA{205, 210, 106, 255}

// Server wires the HTTP layer to a game store.
type Server struct {
	store store.Store
	log   zerolog.Logger
	srvMu sync.Mutex
	srv   *http.Server
}

// NewServer returns a Server serving games from st.
func NewServer(st store.Store, log zerolog.Logger) *Server {
	return &Server{store: st, log: log}
}

// Handler returns the API routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.routes())
}

// Listen starts the HTTP server and blocks until it stops.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Info().Str("addr", addr).Msg("http listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/games", s.withJSON(s.handleCreate))
	mux.HandleFunc("GET /api/v1/games/{id}", s.withJSON(s.handleGet))
	mux.HandleFunc("DELETE /api/v1/games/{id}", s.withJSON(s.handleDelete))
	mux.HandleFunc("POST /api/v1/games/{id}/moves", s.withJSON(s.handleMove))
	mux.HandleFunc("POST /api/v1/games/{id}/resign", s.withJSON(s.handleResign))
	mux.HandleFunc("GET /api/v1/games/{id}/board.svg", s.handleBoardSVG)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- middleware ----

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

// ---- JSON helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes an optional JSON body into v. An empty body leaves
// v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return true
	case isBodyTooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, "request too large")
	default:
		writeError(w, http.StatusBadRequest, "invalid json")
	}
	return false
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// writeStoreError maps store failures to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, store.ErrFull):
		writeError(w, http.StatusServiceUnavailable, "too many games")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("store")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

// ---- payloads ----

type gameResponse struct {
	ID       string   `json:"id"`
	FEN      string   `json:"fen"`
	Position string   `json:"position"`
	Status   string   `json:"status"`
	Outcome  string   `json:"outcome"`
	Method   string   `json:"method,omitempty"`
	InCheck  bool     `json:"inCheck"`
	Moves    []string `json:"moves"`
	History  []string `json:"history"`
}

func newGameResponse(id uuid.UUID, g *chess.Game) gameResponse {
	resp := gameResponse{
		ID:       id.String(),
		FEN:      g.FEN(),
		Position: g.PositionFEN(),
		Status:   g.Status().String(),
		Outcome:  g.Outcome().String(),
		InCheck:  g.InCheck(),
		Moves:    uciStrings(g.ValidMoves()),
		History:  uciStrings(g.Moves()),
	}
	if g.Method() != chess.NoMethod {
		resp.Method = g.Method().String()
	}
	return resp
}

func uciStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// ---- API: games ----

type createBody struct {
	FEN string `json:"fen"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if !decodeBody(w, r, &body) {
		return
	}
	var options []func(*chess.Game)
	if fen := strings.TrimSpace(body.FEN); fen != "" {
		opt, err := chess.FEN(fen)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		options = append(options, opt)
	}
	id, err := s.store.Create(r.Context(), options...)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var resp gameResponse
	err := s.store.View(r.Context(), id, func(g *chess.Game) error {
		resp = newGameResponse(id, g)
		return nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- API: move ----

type moveBody struct {
	Move     string `json:"move"`
	Notation string `json:"notation"` // "uci" (default) or "san"
	Index    *int   `json:"index"`
}

type moveResponse struct {
	Status string       `json:"status"`
	Game   gameResponse `json:"game"`
}

func parseNotation(s string) (chess.Notation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uci":
		return chess.UCINotation{}, true
	case "san", "algebraic":
		return chess.AlgebraicNotation{}, true
	}
	return nil, false
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}
	move := strings.TrimSpace(body.Move)
	if move == "" && body.Index == nil {
		writeError(w, http.StatusBadRequest, "move or index required")
		return
	}
	notation, ok := parseNotation(body.Notation)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown notation")
		return
	}

	var (
		status chess.Status
		resp   gameResponse
	)
	err := s.store.Do(r.Context(), id, func(g *chess.Game) error {
		if move != "" {
			status = g.PushNotationMove(move, notation)
		} else {
			status = g.MakeMoveIndex(*body.Index)
		}
		resp = newGameResponse(id, g)
		return nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	code := http.StatusOK
	if status == chess.StatusInvalidMove {
		code = http.StatusBadRequest
		s.log.Debug().Str("id", id.String()).Str("move", move).Str("fen", resp.FEN).Msg("invalid move")
	}
	writeJSON(w, code, moveResponse{Status: status.String(), Game: resp})
}

// ---- API: resign ----

type resignBody struct {
	Color string `json:"color"`
}

func parseColor(s string) (chess.Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return chess.White, true
	case "black", "b":
		return chess.Black, true
	}
	return chess.NoColor, false
}

func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var body resignBody
	if !decodeBody(w, r, &body) {
		return
	}
	c, ok := parseColor(body.Color)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid color")
		return
	}
	var resp gameResponse
	err := s.store.Do(r.Context(), id, func(g *chess.Game) error {
		g.Resign(c)
		resp = newGameResponse(id, g)
		return nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{Status: resp.Status, Game: resp})
}

// ---- API: board image ----

func (s *Server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	options := []func(*image.Encoder){}
	if c, ok := parseColor(r.URL.Query().Get("perspective")); ok {
		options = append(options, image.Perspective(c))
	}

	var buf bytes.Buffer
	err := s.store.View(r.Context(), id, func(g *chess.Game) error {
		if moves := g.Moves(); len(moves) > 0 {
			last := moves[len(moves)-1]
			options = append(options, image.MarkSquares(lastMoveColor, last.S1(), last.S2()))
		}
		return image.SVG(&buf, g.Position().Board(), options...)
	})
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
