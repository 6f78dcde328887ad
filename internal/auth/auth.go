package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"Frostline/internal/logging"
	repo "Frostline/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	cookieName     = "session_token"
	sessionTTL     = 30 * 24 * time.Hour
	minPasswordLen = 6
)

type contextKey string

const userIDKey contextKey = "userID"

type Env struct {
	Key   []byte
	Users repo.UserRepository
	// Now defaults to time.Now.
	Now func() time.Time
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// UserID returns the authenticated user id stored by Middleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id != 0
}

// WithUserID is used by Middleware and by tests.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func (env *Env) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

func (env *Env) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Login, email and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < minPasswordLen {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := env.Users.CreateUser(r.Context(), req.Login, req.Email, hash)
	if err != nil {
		logging.Ctx(r.Context()).WarnContext(r.Context(), "create user failed", slog.String("login", req.Login), slog.Any("error", err))
		http.Error(w, "User already exists or DB error", http.StatusConflict)
		return
	}
	if err := env.setCookie(w, id, req.Login); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Registration successful"))
}

func (env *Env) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	id, hash, err := env.Users.GetByLogin(r.Context(), req.Login)
	if err != nil {
		logging.Ctx(r.Context()).ErrorContext(r.Context(), "user lookup failed", slog.Any("error", err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if id == 0 || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err := env.setCookie(w, id, req.Login); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.Write([]byte("Authentication successful"))
}

func (env *Env) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Middleware rejects requests without a valid session cookie and stores the
// user id in the request context.
func (env *Env) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		id, login, err := env.parse(cookie.Value)
		if err != nil {
			logging.Ctx(r.Context()).DebugContext(r.Context(), "rejected session", slog.Any("error", err))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := WithUserID(r.Context(), id)
		ctx = logging.With(ctx, logging.Ctx(ctx).With(slog.Int("user_id", id), slog.String("login", login)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (env *Env) token(userID int, login string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     env.now().Add(sessionTTL).Unix(),
	})
	return t.SignedString(env.Key)
}

var errBadClaims = errors.New("bad claims")

func (env *Env) parse(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.Key, nil
	}, jwt.WithTimeFunc(env.now))
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errBadClaims
	}
	idf, ok := claims["user_id"].(float64)
	if !ok || idf <= 0 {
		return 0, "", errBadClaims
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return 0, "", errBadClaims
	}
	return int(idf), login, nil
}

func (env *Env) setCookie(w http.ResponseWriter, userID int, login string) error {
	token, err := env.token(userID, login)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  env.now().Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
