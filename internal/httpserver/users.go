// internal/httpserver/users.go
//
// Accounts for the word search backend.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (require auth)
//   - optional/required auth middleware, anonymous guest cookie
//   - users table helpers and stat counters

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/auth"
)

var errUsernameTaken = errors.New("username taken")

// credentialsReq is the payload for signup and login.
type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(auth.FromContext(r.Context()))
	})
	s.r.With(s.requireAuth()).Get("/stats/me", s.handleStats)
	s.r.With(s.requireAuth()).Get("/games/mine", s.handleMyGames)
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "invalid_json", http.StatusBadRequest)
		return
	}
	u, err := s.createUser(body.Username, body.Password)
	if errors.Is(err, errUsernameTaken) {
		writeError(w, "Username taken", http.StatusConflict)
		return
	}
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tok, exp, err := s.cfg.Auth.Sign(u.ID, u.Username)
	if err != nil {
		writeError(w, "sign_failed", http.StatusInternalServerError)
		return
	}
	s.cfg.Auth.SetCookie(w, tok, exp)
	s.claimAnonGames(r, s.ensureAnonID(w, r), u.ID)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt, "token": tok})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "invalid_json", http.StatusBadRequest)
		return
	}
	u, err := s.findUserByUsername(strings.TrimSpace(body.Username))
	if err != nil || !auth.CheckPassword(u.PasswordHash, body.Password) {
		writeError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	tok, exp, err := s.cfg.Auth.Sign(u.ID, u.Username)
	if err != nil {
		writeError(w, "sign_failed", http.StatusInternalServerError)
		return
	}
	s.cfg.Auth.SetCookie(w, tok, exp)
	s.claimAnonGames(r, s.ensureAnonID(w, r), u.ID)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username, "token": tok})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cfg.Auth.ClearCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	u, err := s.findUserByID(me.ID)
	if err != nil {
		writeError(w, "not_found", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":             u.ID,
		"gamesPlayed":    u.GamesPlayed,
		"gamesCompleted": u.GamesCompleted,
		"wordsFound":     u.WordsFound,
	})
}

// handleMyGames lists the caller's 50 most recent games.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context())
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT id, status, grid_rows, grid_cols, words_total, words_found, claims, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		writeError(w, "db_error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	type gameRow struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		Rows       int    `json:"rows"`
		Cols       int    `json:"cols"`
		WordsTotal int    `json:"wordsTotal"`
		WordsFound int    `json:"wordsFound"`
		Claims     int    `json:"claims"`
		StartedAt  string `json:"startedAt"`
		FinishedAt string `json:"finishedAt,omitempty"`
	}
	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Status, &gr.Rows, &gr.Cols, &gr.WordsTotal,
			&gr.WordsFound, &gr.Claims, &gr.StartedAt, &gr.FinishedAt); err != nil {
			log.Warn().Err(err).Msg("scan game row")
			continue
		}
		out = append(out, gr)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// --------------------------- auth middleware --------------------------------

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := s.cfg.Auth.TokenFromRequest(r); tok != "" {
				if claims, err := s.cfg.Auth.Parse(tok); err == nil {
					if u, err := s.findUserByID(claims.ID); err == nil {
						r = r.WithContext(auth.WithUser(r.Context(), &auth.User{ID: u.ID, Username: u.Username}))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects the user into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.cfg.Auth.TokenFromRequest(r)
			if tok == "" {
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := s.cfg.Auth.Parse(tok)
			if err != nil {
				writeError(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			// Ensure user still exists
			if _, err := s.findUserByID(claims.ID); err != nil {
				writeError(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), &claims)))
		})
	}
}

const anonCookieName = "wordsearch_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate guest games with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Auth.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Auth.Secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	// later handlers in the same request see the same id
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

// claimAnonGames transfers any anonymous games to a user account after auth.
func (s *Server) claimAnonGames(r *http.Request, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.ExecContext(r.Context(),
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon games")
	}
}

// ------------------------------ users table ---------------------------------

// userRow matches the users table shape.
type userRow struct {
	ID             string
	Username       string
	PasswordHash   string
	CreatedAt      time.Time
	GamesPlayed    int
	GamesCompleted int
	WordsFound     int
}

// createUser validates input, checks uniqueness, hashes password, and inserts a new user.
func (s *Server) createUser(username, pw string) (*userRow, error) {
	username = auth.NormalizeUsername(username)
	if err := auth.ValidateSignup(username, pw); err != nil {
		return nil, err
	}
	var exists int
	_ = s.db.QueryRow(`SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if exists == 1 {
		return nil, errUsernameTaken
	}
	h, err := auth.HashPassword(pw)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := genID()
	if _, err := s.db.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, h, now.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return &userRow{ID: id, Username: username, PasswordHash: h, CreatedAt: now}, nil
}

const userColumns = `id, username, password_hash, created_at, games_played, games_completed, words_found`

func (s *Server) findUserByUsername(username string) (*userRow, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE lower(username)=lower(?)`, username))
}

func (s *Server) findUserByID(id string) (*userRow, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

// scanUser converts a *sql.Row into a userRow.
func scanUser(row *sql.Row) (*userRow, error) {
	var u userRow
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created,
		&u.GamesPlayed, &u.GamesCompleted, &u.WordsFound); err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// bumpStats counts one found word and, when the game just completed, one
// completed game (within tx).
func bumpStats(tx *sql.Tx, userID string, completed bool) error {
	done := 0
	if completed {
		done = 1
	}
	_, err := tx.Exec(`UPDATE users SET words_found = words_found + 1, games_completed = games_completed + ?
	                   WHERE id=?`, done, userID)
	return err
}
