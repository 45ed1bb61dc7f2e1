package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Gin context keys set for authenticated requests.
const (
	ContextUserID = "UserID"
	ContextEmail  = "Email"
)

// Verdict is the outcome of checking a request's session.
type Verdict int

const (
	Unauthenticated Verdict = iota
	Authenticated
	// Forbidden means the token is genuine but does not name a user.
	Forbidden
)

// AuthResult carries the caller identity when Verdict is Authenticated, and the
// rejection reason for the audit log otherwise.
type AuthResult struct {
	Verdict  Verdict
	Identity domain.Identity
	Reason   string
}

// Gate guards every private route with the same session check.
type Gate struct {
	tokens     *auth.TokenService
	signInPath string
	audit      *security.SecurityLogger
}

func NewGate(tokens *auth.TokenService, signInPath string, audit *security.SecurityLogger) *Gate {
	if signInPath == "" {
		signInPath = "/sign-in"
	}
	return &Gate{tokens: tokens, signInPath: signInPath, audit: audit}
}

// Authenticate reads the session cookie and verifies it.
func (g *Gate) Authenticate(r *http.Request) AuthResult {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return AuthResult{Verdict: Unauthenticated, Reason: "missing_token"}
	}

	claims, err := g.tokens.Verify(cookie.Value)
	switch {
	case err == nil:
		return AuthResult{
			Verdict:  Authenticated,
			Identity: domain.Identity{UserID: claims.UserID(), Email: claims.Email},
		}
	case errors.Is(err, auth.ErrMissingIdentity):
		return AuthResult{Verdict: Forbidden, Reason: "missing_identity"}
	case errors.Is(err, auth.ErrExpiredToken):
		return AuthResult{Verdict: Unauthenticated, Reason: "expired_token"}
	default:
		return AuthResult{Verdict: Unauthenticated, Reason: "invalid_token"}
	}
}

// Require aborts requests without a valid session. Browser navigations to the
// dashboard are redirected to the sign-in page instead of getting JSON.
func (g *Gate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := g.Authenticate(c.Request)

		if result.Verdict == Authenticated {
			c.Set(ContextUserID, result.Identity.UserID)
			c.Set(ContextEmail, result.Identity.Email)
			c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), result.Identity))
			c.Next()
			return
		}

		g.audit.LogUnauthorized(
			c.Request.Context(),
			c.ClientIP(),
			c.GetString(response.RequestIDKey),
			c.Request.URL.Path,
			result.Reason,
		)

		if result.Verdict == Forbidden {
			response.Error(c, http.StatusForbidden, "Invalid token payload", nil)
			c.Abort()
			return
		}

		if isPageNavigation(c) {
			c.Redirect(http.StatusFound, g.signInPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		message := "Authentication required"
		if result.Reason != "missing_token" {
			message = "Invalid or expired session"
		}
		response.Error(c, http.StatusUnauthorized, message, nil)
		c.Abort()
	}
}

func isPageNavigation(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet || !strings.HasPrefix(c.Request.URL.Path, "/dashboard") {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
