package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpad/webapps/internal/core/domain"
)

const CookieName = "session"

// sessionClaims is the payload of the signed session cookie. The session
// token itself is opaque; the signature only proves the cookie was minted here.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionCookie signs session tokens into the "session" cookie and reads them back.
type SessionCookie struct {
	secret []byte
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCookie(secret string, secure bool, ttl time.Duration) *SessionCookie {
	return &SessionCookie{secret: []byte(secret), secure: secure, ttl: ttl, now: time.Now}
}

// Encode wraps token in an HS256 JWT.
func (s *SessionCookie) Encode(token string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		SessionID: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Decode verifies value and returns the session token it carries.
func (s *SessionCookie) Decode(value string) (string, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid session cookie")
	}
	if claims.SessionID == "" {
		return "", errors.New("session cookie without sid")
	}
	return claims.SessionID, nil
}

// Issue sets the session cookie for token on the response.
func (s *SessionCookie) Issue(c echo.Context, token string) error {
	value, err := s.Encode(token)
	if err != nil {
		return err
	}
	cookie := s.base()
	cookie.Value = value
	if s.ttl > 0 {
		cookie.MaxAge = int(s.ttl / time.Second)
	}
	c.SetCookie(cookie)
	return nil
}

// Clear expires the session cookie on the client.
func (s *SessionCookie) Clear(c echo.Context) {
	cookie := s.base()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

// Token returns the session token carried by the request, or "" when the
// cookie is absent or fails verification.
func (s *SessionCookie) Token(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	token, err := s.Decode(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

func (s *SessionCookie) base() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// UserResolver maps a session token to the user it belongs to; nil means
// the session is unknown or ended.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// Session resolves the session cookie against the session store on every
// request and injects the identity into context ("user_id", "username",
// "session_token"). Requests without a live session pass through anonymous.
func Session(cookies *SessionCookie, users UserResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookies.Token(c)
			if token == "" {
				return next(c)
			}

			user, err := users.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if user == nil {
				log.Debug().Str("path", c.Path()).Msg("stale session cookie cleared")
				cookies.Clear(c)
				return next(c)
			}

			c.Set("user_id", user.ID)
			c.Set("username", user.Username)
			c.Set("session_token", token)

			return next(c)
		}
	}
}

// RequireLogin rejects anonymous requests with domain.ErrUnauthenticated,
// which the error handler turns into a redirect to the login page.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get("user_id").(string); id == "" {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
