// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/claim       → claim a word in today's puzzle
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Every player gets the same grid for a date: the word choice, placement and
// filler letters all derive from HMAC(salt, date).
// Each user can finish once per day (enforced by DB + in-memory session).
// Sessions from earlier dates are dropped when a new one is created.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/auth"
	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions and every claim on them
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	UserID   string
	Date     string
	Game     *game.Session
	Start    time.Time
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/claim", dd.handleClaim)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// userID returns the authenticated user ID if logged in,
// otherwise the anonymous cookie ID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := auth.FromContext(r.Context()); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// newPuzzle builds today's session from the date seed.
func (d *dailyServer) newPuzzle(date string) (*game.Session, error) {
	return dailyPuzzle(date, d.salt, d.srv.cfg.Rows, d.srv.cfg.Cols, d.srv.cfg.WordsPerGame)
}

// dailyPuzzle is deterministic in its arguments. Rerolls step the date seed
// so a crossing layout is replaced the same way for every player.
func dailyPuzzle(date, salt string, rows, cols, n int) (*game.Session, error) {
	base := daily.SeedForKey(date, salt)
	return buildDisjoint(func(attempt int) (*game.Session, error) {
		seed := base + uint64(attempt)
		return game.NewSession(rows, cols, words.Daily(seed, n, max(rows, cols)), game.WithSeed(seed))
	})
}

// pruneLocked drops sessions for any date other than today. d.mu must be held.
func (d *dailyServer) pruneLocked(today string) {
	for key, sess := range d.sessions {
		if sess.Date != today {
			delete(d.sessions, key)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string   `json:"gameId"`
	Date   string   `json:"date"`
	Played bool     `json:"played"`
	Grid   []string `json:"grid,omitempty"`
	Words  []string `json:"words,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return its grid.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date := daily.DateKey(time.Now())

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[key]
	if !ok {
		d.pruneLocked(date)
		g, err := d.newPuzzle(date)
		if err != nil {
			log.Error().Err(err).Str("date", date).Msg("build daily puzzle")
			writeError(w, "daily_unavailable", http.StatusInternalServerError)
			return
		}
		sess = &dailySession{UserID: uid, Date: date, Game: g, Start: time.Now()}
		d.sessions[key] = sess
	}
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: sess.Game.ID,
		Date:   date,
		Played: sess.Finished,
		Grid:   gridRows(sess.Game.Snapshot()),
		Words:  sess.Game.Remaining(),
	})
}

// -----------------------------------------------------------------------------
// /daily/claim

// dailyClaimRes is the response payload for /daily/claim.
type dailyClaimRes struct {
	Found     bool     `json:"found"`
	Grid      []string `json:"grid"`
	Remaining []string `json:"remaining"`
	State     string   `json:"state"` // playing | complete | blocked | locked
	Attempts  int      `json:"attempts"`
}

var errNoSession = errors.New("no session")

// handleClaim validates and applies a claim to today's session and
// persists the result when the last word is found.
func (d *dailyServer) handleClaim(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var p claimReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, "bad_json", http.StatusBadRequest)
		return
	}
	dir, err := game.ParseDirection(p.Direction)
	if err != nil {
		writeError(w, "invalid_direction", http.StatusBadRequest)
		return
	}

	date := daily.DateKey(time.Now())
	key := uid + "|" + date

	var res dailyClaimRes
	var result *daily.Result
	err = func() error {
		d.mu.Lock()
		defer d.mu.Unlock()
		sess, ok := d.sessions[key]
		if !ok || sess.Game.ID != p.GameID {
			return errNoSession
		}
		g := sess.Game
		if sess.Finished {
			res = dailyClaimRes{Grid: gridRows(g.Snapshot()), Remaining: g.Remaining(), State: "locked", Attempts: g.Attempts()}
			return nil
		}
		found, err := g.Claim(p.Word, p.Row, p.Col, dir)
		if err != nil {
			return err
		}
		res = dailyClaimRes{
			Found:     found,
			Grid:      gridRows(g.Snapshot()),
			Remaining: g.Remaining(),
			State:     g.State(),
			Attempts:  g.Attempts(),
		}
		if g.Over() {
			sess.Finished = true
			result = &daily.Result{
				UserID:     uid,
				Date:       date,
				WordsFound: len(g.Found()),
				Attempts:   g.Attempts(),
				ElapsedMs:  int(time.Since(sess.Start).Milliseconds()),
			}
		}
		return nil
	}()
	if errors.Is(err, errNoSession) {
		writeError(w, "no_session", http.StatusConflict)
		return
	}
	if err != nil {
		writeError(w, gameErrorCode(err), http.StatusBadRequest)
		return
	}

	if result != nil {
		if err := d.store.InsertResult(r.Context(), *result); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, "server_error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
