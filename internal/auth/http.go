package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PriceStore/pkg/kit"
)

const (
	defaultTokenTTL = 15 * time.Minute
	limitWindow     = time.Minute
)

type OperatorStore interface {
	Create(ctx context.Context, email, password string, role Role) (Operator, error)
	Verify(ctx context.Context, email, password string) (Operator, error)
}

type Server struct {
	Log      *zap.Logger
	Store    OperatorStore
	JWT      *TokenMaker
	TokenTTL time.Duration

	// LoginLimitPerMin caps login attempts per client IP; zero disables it.
	LoginLimitPerMin int
}

// Routes serves /login and /whoami; callers mount it under /auth.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	login := http.Handler(http.HandlerFunc(s.handleLogin))
	if s.LoginLimitPerMin > 0 {
		login = kit.NewIPRateLimiter(s.LoginLimitPerMin, limitWindow).Middleware(login)
	}
	r.Method(http.MethodPost, "/login", login)
	r.With(RequireOperator(s.JWT)).Get("/whoami", s.handleWhoAmI)

	return r
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Email = normalizeEmail(req.Email)
	req.Password = normalizePassword(req.Password)
	if req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required", nil)
		return
	}

	op, err := s.Store.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger().Info("login rejected", zap.String("email", req.Email))
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	tok, err := s.JWT.New(op, ttl)
	if err != nil {
		s.logger().Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{
		AccessToken: tok,
		ExpiresAt:   s.JWT.now().Add(ttl).UTC().Truncate(time.Second),
	})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	c, _ := ClaimsFromContext(r.Context())
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"operator_id": c.OperatorID,
		"email":       c.Email,
		"role":        c.Role,
	})
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

type ctxKey string

const claimsKey ctxKey = "claims"

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// RequireOperator rejects requests without a valid bearer token.
func RequireOperator(jwt *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := jwt.Parse(tok)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireOperator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFromContext(r.Context())
		if !ok || c.Role != RoleAdmin {
			kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
