package v1

import (
	"net/http"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	secureCookie bool
	siteOwnerID  string
}

func NewAuthHandler(
	public *gin.RouterGroup,
	protected *gin.RouterGroup,
	authUC domain.AuthUsecase,
	secureCookie bool,
	siteOwnerID string,
	limit gin.HandlerFunc,
) {
	handler := &AuthHandler{
		authUC:       authUC,
		secureCookie: secureCookie,
		siteOwnerID:  siteOwnerID,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", limit, handler.Register)
		publicAuth.POST("/login", limit, handler.Login)
		publicAuth.POST("/signout", handler.Signout)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/profile-info", handler.GetProfile)
		protectedAuth.PATCH("/profile-info", handler.UpdateProfile)
	}

	public.GET("/public/profile", handler.PublicProfile)
	public.GET("/public/users/:userId/profile", handler.PublicProfile)
}

// LoginResponse is returned on successful sign in; the token itself only travels in the cookie.
type LoginResponse struct {
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Register godoc
// @Summary      Register with a passkey
// @Description  Create an account. A valid, unused passkey is required and is consumed on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterRequest  true  "Registration Details"
// @Success      201       {object}  response.Response{data=domain.User}
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      429       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", user)
}

// Login godoc
// @Summary      Sign in
// @Description  Verify credentials and set the HTTP-only session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=LoginResponse}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	session, err := h.authUC.Login(c.Request.Context(), &req, domain.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(response.RequestIDKey),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	response.Success(c, http.StatusOK, "Login successful", LoginResponse{
		User:      session.User,
		ExpiresAt: session.ExpiresAt,
	})
}

// Signout godoc
// @Summary      Sign out
// @Description  Clear the session cookie. Always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	response.Success(c, http.StatusOK, "Signed out", nil)
}

// GetProfile godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/profile-info [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", user)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Partially update name, bio, picture, resume and social links. Omitted fields are unchanged.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfilePatch  true  "Profile fields"
// @Success      200      {object}  response.Response{data=domain.User}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /auth/profile-info [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.authUC.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// PublicProfile godoc
// @Summary      Public profile
// @Description  Profile of the site owner, or of the given user.
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Success      200     {object}  response.Response{data=domain.PublicProfile}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /public/profile [get]
// @Router       /public/users/{userId}/profile [get]
func (h *AuthHandler) PublicProfile(c *gin.Context) {
	owner, ok := publicOwner(c, h.siteOwnerID)
	if !ok {
		return
	}

	profile, err := h.authUC.GetPublicProfile(c.Request.Context(), owner)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", profile)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// publicOwner resolves whose content a public route serves: the :userId path
// parameter when present, otherwise the configured site owner.
func publicOwner(c *gin.Context, siteOwnerID string) (string, bool) {
	owner := c.Param("userId")
	if owner == "" {
		if siteOwnerID == "" {
			c.Error(apperror.NotFound("Site owner not configured"))
			return "", false
		}
		return siteOwnerID, true
	}
	if _, err := uuid.Parse(owner); err != nil {
		c.Error(apperror.BadRequest("Invalid user ID format"))
		return "", false
	}
	return owner, true
}

func resourceID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return "", false
	}
	return id, true
}
