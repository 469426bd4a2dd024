// internal/httpserver/server.go
//
// HTTP server wiring for the word search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, GET /game/{id}, POST /game/claim.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine (users.go).
//   - Game history rows and user stats in the database.
//
// Notes:
//   - Live grids stay in the session store; the database only records history.
//   - Every claim runs inside store.Update so verification and consumption
//     of cells happen atomically per store.
//   - Sessions idle longer than Config.SessionIdle are swept from the store.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	mrand "math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/auth"
	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// maxSide bounds requested grid dimensions.
const maxSide = config.MaxGridSide

// maxRerolls bounds how many layouts a puzzle builder tries while looking
// for one whose words do not cross.
const maxRerolls = 16

// Config holds the settings the handlers need.
type Config struct {
	Auth         auth.Config
	ClientOrigin string
	DailySalt    string
	Rows         int           // default grid rows
	Cols         int           // default grid cols
	WordsPerGame int           // default word count when the client sends none
	SessionIdle  time.Duration // sweep sessions untouched this long; 0 disables
}

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordsearch-go","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/claim","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": words.Stats()})
	})

	// Game endpoints: optional auth, guests can play
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Get("/game/{id}", s.handleGetGame)
	s.r.With(s.withOptionalAuth()).Post("/game/claim", s.handleClaim)

	// Daily Challenge: optional auth, result persisted on completion
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "not_found", http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr and sweeps idle sessions in the
// background until the listener stops.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if s.cfg.SessionIdle > 0 {
		go s.sweepLoop(ctx, s.cfg.SessionIdle)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) sweepLoop(ctx context.Context, idle time.Duration) {
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.sweepIdle(ctx, now.Add(-idle)); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle sessions")
			}
		}
	}
}

// sweepIdle deletes sessions untouched since before and returns how many
// were removed.
func (s *Server) sweepIdle(ctx context.Context, before time.Time) int {
	ids, err := s.store.Idle(ctx, before)
	if err != nil {
		log.Warn().Err(err).Msg("list idle sessions")
		return 0
	}
	n := 0
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("delete idle session")
			continue
		}
		n++
	}
	return n
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes method, path, status, bytes and duration per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

// writeError emits {"error":code} with the given status.
func writeError(w http.ResponseWriter, code string, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Rows  int      `json:"rows"`  // default from config
	Cols  int      `json:"cols"`  // default from config
	Words []string `json:"words"` // optional fixed list; random pick when empty
	Count int      `json:"count"` // random pick size
	Seed  *uint64  `json:"seed"`  // optional, reproducible grid
}
type newGameRes struct {
	GameID  string   `json:"gameId"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Grid    []string `json:"grid"`
	Words   []string `json:"words"`
	Dropped []string `json:"dropped"`
}

// gameStateRes is returned by GET /game/{id} and POST /game/claim.
type gameStateRes struct {
	GameID    string           `json:"gameId"`
	Grid      []string         `json:"grid"`
	Remaining []string         `json:"remaining"`
	Claimed   []game.Placement `json:"claimed"`
	State     string           `json:"state"` // "playing" | "complete" | "blocked"
}

// gridRows turns a snapshot into one string per row.
func gridRows(snap [][]byte) []string {
	out := make([]string, len(snap))
	for i, row := range snap {
		out[i] = string(row)
	}
	return out
}

// buildDisjoint calls build until the session's words do not share any
// cell, keeping the last layout after maxRerolls attempts. Crossing words
// can leave a game blocked, so puzzle builders prefer disjoint layouts.
func buildDisjoint(build func(attempt int) (*game.Session, error)) (*game.Session, error) {
	var g *game.Session
	for i := 0; i < maxRerolls; i++ {
		var err error
		if g, err = build(i); err != nil {
			return nil, err
		}
		if !g.Overlapping() {
			return g, nil
		}
	}
	log.Debug().Str("gameId", g.ID).Msg("kept a crossing layout")
	return g, nil
}

func newRand(seed *uint64) *mrand.Rand {
	if seed != nil {
		return mrand.New(mrand.NewPCG(*seed, ^*seed))
	}
	return mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
}

// gameErrorCode maps boundary errors from the game package to API codes.
func gameErrorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, game.ErrInvalidDimensions):
		return "invalid_dimensions"
	case errors.Is(err, game.ErrNoWords):
		return "no_words"
	case errors.Is(err, game.ErrInvalidWord):
		return "invalid_word"
	}
	return "bad_request"
}

// handleNewGame builds a session, stores it, and records a history row
// owned by the user or the anonymous cookie.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = s.cfg.Rows
	}
	if cols == 0 {
		cols = s.cfg.Cols
	}
	if rows <= 0 || cols <= 0 || rows > maxSide || cols > maxSide {
		writeError(w, "invalid_dimensions", http.StatusBadRequest)
		return
	}

	// one rng across rerolls keeps seeded games reproducible
	rng := newRand(req.Seed)
	g, err := buildDisjoint(func(int) (*game.Session, error) {
		list := req.Words
		if len(list) == 0 {
			n := req.Count
			if n <= 0 {
				n = s.cfg.WordsPerGame
			}
			list = words.Pick(rng, n, max(rows, cols))
		}
		return game.NewSession(rows, cols, list, game.WithRand(rng))
	})
	if err != nil {
		writeError(w, gameErrorCode(err), http.StatusBadRequest)
		return
	}
	if dropped := g.Dropped(); len(dropped) > 0 {
		log.Debug().Str("gameId", g.ID).Strs("dropped", dropped).Msg("words did not fit")
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, "save_failed", http.StatusInternalServerError)
		return
	}

	s.insertGameRow(w, r, g)

	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:  g.ID,
		Rows:    g.Rows,
		Cols:    g.Cols,
		Grid:    gridRows(g.Snapshot()),
		Words:   g.Remaining(),
		Dropped: nonNil(g.Dropped()),
	})
}

// handleGetGame returns the current grid and word state.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var res gameStateRes
	err := s.store.View(r.Context(), id, func(g *game.Session) error {
		res = stateOf(g)
		return nil
	})
	if err != nil {
		writeError(w, "not_found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

func stateOf(g *game.Session) gameStateRes {
	return gameStateRes{
		GameID:    g.ID,
		Grid:      gridRows(g.Snapshot()),
		Remaining: g.Remaining(),
		Claimed:   nonNil(g.Found()),
		State:     g.State(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// claimRes adds the claim verdict to the game state.
type claimRes struct {
	Found bool `json:"found"`
	gameStateRes
}

// claimReq is the payload for POST /game/claim.
type claimReq struct {
	GameID    string `json:"gameId"`
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"` // Horizontal | Vertical | Diagonal
}

// handleClaim verifies a claim under the store lock, then records the
// attempt in history (best effort).
func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "bad_json", http.StatusBadRequest)
		return
	}
	d, err := game.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, "invalid_direction", http.StatusBadRequest)
		return
	}

	var res claimRes
	err = s.store.Update(r.Context(), req.GameID, func(g *game.Session) error {
		found, err := g.Claim(req.Word, req.Row, req.Col, d)
		if err != nil {
			return err
		}
		res = claimRes{Found: found, gameStateRes: stateOf(g)}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, "not_found", http.StatusNotFound)
		return
	case err != nil:
		writeError(w, gameErrorCode(err), http.StatusBadRequest)
		return
	}

	s.recordClaim(w, r, req.GameID, res.Found, res.State)
	_ = json.NewEncoder(w).Encode(res)
}

// --------------------------- history rows -----------------------------------

// owner returns the SQL predicate and argument identifying the caller.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, any, *auth.User) {
	if me := auth.FromContext(r.Context()); me != nil {
		return `user_id=?`, me.ID, me
	}
	return `anonymous_id=?`, s.ensureAnonID(w, r), nil
}

func (s *Server) insertGameRow(w http.ResponseWriter, r *http.Request, g *game.Session) {
	now := time.Now().UTC().Format(time.RFC3339)
	var userID, anonID any
	if me := auth.FromContext(r.Context()); me != nil {
		userID = me.ID
	} else {
		anonID = s.ensureAnonID(w, r)
	}
	status := g.State()
	_, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, user_id, anonymous_id, grid_rows, grid_cols, words_total, status, started_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		g.ID, userID, anonID, g.Rows, g.Cols, len(g.Remaining()), status, now)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
		return
	}
	if userID != nil {
		if _, err := s.db.ExecContext(r.Context(),
			`UPDATE users SET games_played = games_played + 1 WHERE id=?`, userID); err != nil {
			log.Warn().Err(err).Msg("bump games played")
		}
	}
}

// recordClaim bumps the claim counters and, once the game is over
// (complete or blocked), closes the row with that status. User stats are
// updated in the same transaction.
func (s *Server) recordClaim(w http.ResponseWriter, r *http.Request, gameID string, found bool, state string) {
	clause, arg, me := s.owner(w, r)
	complete := state == game.StateComplete

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin claim tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	inc := 0
	if found {
		inc = 1
	}
	res, err := tx.Exec(`UPDATE games SET claims = claims + 1, words_found = words_found + ?
	                     WHERE id=? AND status='playing' AND `+clause, inc, gameID, arg)
	if err != nil {
		log.Warn().Err(err).Msg("update claims")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return
	}
	if state != game.StatePlaying {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+clause,
			state, time.Now().UTC().Format(time.RFC3339), gameID, arg); err != nil {
			log.Warn().Err(err).Msg("finish game")
			return
		}
	}
	if me != nil && found {
		if err := bumpStats(tx, me.ID, complete); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit claim tx")
	}
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
