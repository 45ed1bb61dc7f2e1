package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerSecret = "router-test-secret-0123456789abcdef"

type stubSender struct {
	sent []email.ContactEmailData
}

func (s *stubSender) IsConfigured() bool { return true }

func (s *stubSender) SendContactEmail(data email.ContactEmailData) error {
	s.sent = append(s.sent, data)
	return nil
}

type testEnv struct {
	router  *gin.Engine
	repos   *repository.Repositories
	tokens  *auth.TokenService
	sender  *stubSender
	ownerID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemory()
	validate := validation.New()
	hasher := security.NewArgon2(security.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	tokens := auth.NewTokenService(routerSecret, time.Hour)
	tracker := security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), nil)
	sender := &stubSender{}

	ownerID := uuid.NewString()
	hash, err := hasher.Hash("owner password")
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, repos.Users.Create(context.Background(), &domain.User{
		ID:           ownerID,
		Name:         "Site Owner",
		Email:        "owner@example.com",
		PasswordHash: hash,
		Bio:          "Backend engineer",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	require.NoError(t, repos.Passkeys.Create(context.Background(), &domain.Passkey{ID: uuid.NewString(), Key: "invite-1", CreatedAt: now}))

	cfg := &config.Config{
		AppEnv:                   "test",
		JWTSecret:                routerSecret,
		TokenTTL:                 time.Hour,
		SignInPath:               "/sign-in",
		SiteOwnerID:              ownerID,
		FrontendOrigins:          []string{"http://localhost:3000"},
		RateLimitWindowSeconds:   60,
		RateLimitAuthThreshold:   100,
		RateLimitGlobalThreshold: 1000,
	}

	router := NewRouter(RouterDeps{
		AuthUC:      usecase.NewAuthUsecase(repos.Users, repos.Passkeys, repos.Transactor, hasher, tokens, tracker, validate, nil),
		JobUC:       usecase.NewJobUsecase(repos.Jobs, validate, nil),
		EducationUC: usecase.NewEducationUsecase(repos.Educations, validate, nil),
		ProjectUC:   usecase.NewProjectUsecase(repos.Projects, validate, nil),
		ServiceUC:   usecase.NewServiceUsecase(repos.Services, validate, nil),
		ContactUC:   usecase.NewContactUsecase(sender, validate),
		HealthUC:    usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"storage": repos.Ping, "redis": nil}),
		Tokens:      tokens,
		Config:      cfg,
	})

	return &testEnv{router: router, repos: repos, tokens: tokens, sender: sender, ownerID: ownerID}
}

func (e *testEnv) session(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, _, err := e.tokens.Issue(userID, userID+"@example.com")
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func jobBody() map[string]any {
	return map[string]any{
		"title":       "Engineer",
		"companyName": "Acme",
		"location":    "Remote",
		"startDate":   "Jan 2024",
		"endDate":     "Present",
		"description": strings.Repeat("Built and operated backend services. ", 4),
		"skills":      "Go, Rust",
	}
}

func TestDashboardJobs(t *testing.T) {
	env := newTestEnv(t)
	alice := uuid.NewString()
	bob := uuid.NewString()

	var created domain.Job

	t.Run("Should create a job owned by the caller with parsed skills", func(t *testing.T) {
		body := jobBody()
		body["user"] = bob
		body["id"] = "client-chosen"

		w := env.do(http.MethodPost, "/dashboard/jobs", body, env.session(t, alice))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		res := decode(t, w)
		require.NoError(t, json.Unmarshal(res.Data, &created))
		assert.Equal(t, domain.Skills{"Go", "Rust"}, created.Skills)
		assert.Equal(t, alice, created.UserID)
		assert.NotEqual(t, "client-chosen", created.ID)
	})

	t.Run("Should return 404 for a job that does not exist", func(t *testing.T) {
		w := env.do(http.MethodGet, "/dashboard/jobs/"+uuid.NewString(), nil, env.session(t, alice))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Job not found", decode(t, w).Error)
	})

	t.Run("Should reject a malformed id", func(t *testing.T) {
		w := env.do(http.MethodGet, "/dashboard/jobs/not-a-uuid", nil, env.session(t, alice))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid ID format", decode(t, w).Error)
	})

	t.Run("Should not let another user delete or see the job", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/dashboard/jobs/"+created.ID, nil, env.session(t, bob))
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(http.MethodGet, "/dashboard/jobs", nil, env.session(t, bob))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(decode(t, w).Data))

		w = env.do(http.MethodGet, "/dashboard/jobs/"+created.ID, nil, env.session(t, alice))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should patch only the provided fields", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/dashboard/jobs/"+created.ID, map[string]any{"title": "Staff Engineer"}, env.session(t, alice))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated domain.Job
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
		assert.Equal(t, "Staff Engineer", updated.Title)
		assert.Equal(t, created.CompanyName, updated.CompanyName)
		assert.Equal(t, created.Skills, updated.Skills)
	})

	t.Run("Should report field errors for invalid input", func(t *testing.T) {
		body := jobBody()
		body["description"] = "too short"

		w := env.do(http.MethodPost, "/dashboard/jobs", body, env.session(t, alice))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		res := decode(t, w)
		assert.Equal(t, "invalid input", res.Error)
		assert.Contains(t, res.Fields, "description")
	})

	t.Run("Should delete the owner's job", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/dashboard/jobs/"+created.ID, nil, env.session(t, alice))
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(http.MethodGet, "/dashboard/jobs/"+created.ID, nil, env.session(t, alice))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should require a session", func(t *testing.T) {
		w := env.do(http.MethodGet, "/dashboard/jobs", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, decode(t, w).Success)
	})
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t)

	service := map[string]any{
		"title":       "Backend development",
		"description": strings.Repeat("APIs, data pipelines and infrastructure. ", 4),
	}
	w := env.do(http.MethodPost, "/dashboard/services", service, env.session(t, env.ownerID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Service
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	t.Run("Should list the site owner's content without a session", func(t *testing.T) {
		w := env.do(http.MethodGet, "/public/services", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var items []domain.Service
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, created.ID, items[0].ID)
	})

	t.Run("Should read a single item by owner and id", func(t *testing.T) {
		w := env.do(http.MethodGet, "/public/users/"+env.ownerID+"/services/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(http.MethodGet, "/public/users/"+uuid.NewString()+"/services/"+created.ID, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Service not found", decode(t, w).Error)
	})

	t.Run("Should reject a malformed user id", func(t *testing.T) {
		w := env.do(http.MethodGet, "/public/users/nope/projects", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should return an empty list for an owner with no content", func(t *testing.T) {
		w := env.do(http.MethodGet, "/public/educations", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(decode(t, w).Data))
	})

	t.Run("Should hide the owner's email on the public profile", func(t *testing.T) {
		w := env.do(http.MethodGet, "/public/profile", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "owner@example.com")
		assert.Contains(t, w.Body.String(), "Site Owner")
	})

	t.Run("Should relay contact messages", func(t *testing.T) {
		w := env.do(http.MethodPost, "/public/contact", map[string]any{
			"name":    "Visitor",
			"email":   "visitor@example.com",
			"subject": "Hello",
			"message": "I liked your projects a lot.",
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, env.sender.sent, 1)
		assert.Equal(t, "visitor@example.com", env.sender.sent[0].SenderEmail)
	})

	t.Run("Should report health", func(t *testing.T) {
		w := env.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
	})
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Should register with a passkey, sign in and read the profile", func(t *testing.T) {
		w := env.do(http.MethodPost, "/auth/register", map[string]any{
			"name":     "Grace Hopper",
			"email":    "Grace@Example.com",
			"password": "correct horse battery",
			"passkey":  "invite-1",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "password")

		w = env.do(http.MethodPost, "/auth/login", map[string]any{
			"email":    "grace@example.com",
			"password": "correct horse battery",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.CookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

		w = env.do(http.MethodGet, "/auth/profile-info", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "grace@example.com")

		w = env.do(http.MethodPatch, "/auth/profile-info", map[string]any{"bio": "Compiler pioneer"}, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Compiler pioneer")
	})

	t.Run("Should refuse a passkey that was already used", func(t *testing.T) {
		w := env.do(http.MethodPost, "/auth/register", map[string]any{
			"name":     "Alan Turing",
			"email":    "alan@example.com",
			"password": "another long password",
			"passkey":  "invite-1",
		}, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "passkey already used", decode(t, w).Error)
	})

	t.Run("Should fail login with the same message for unknown users", func(t *testing.T) {
		wrong := env.do(http.MethodPost, "/auth/login", map[string]any{"email": "owner@example.com", "password": "wrong password"}, nil)
		unknown := env.do(http.MethodPost, "/auth/login", map[string]any{"email": "ghost@example.com", "password": "wrong password"}, nil)

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, decode(t, wrong).Error, decode(t, unknown).Error)
	})

	t.Run("Should clear the cookie on sign out", func(t *testing.T) {
		w := env.do(http.MethodPost, "/auth/signout", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestRecovery(t *testing.T) {
	env := newTestEnv(t)
	env.router.GET("/boom", func(*gin.Context) { panic("boom") })

	t.Run("Should answer a panicking handler with the error envelope", func(t *testing.T) {
		w := env.do(http.MethodGet, "/boom", nil, nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		res := decode(t, w)
		assert.False(t, res.Success)
		assert.Equal(t, "An unexpected error occurred. Please try again later.", res.Error)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestDashboardKinds(t *testing.T) {
	env := newTestEnv(t)
	alice := uuid.NewString()
	bob := uuid.NewString()

	kinds := []struct {
		path     string
		name     string
		minDesc  int
		urlField string
		body     func() map[string]any
	}{
		{
			path: "jobs", name: "Job", minDesc: 100, urlField: "companyLogo",
			body: jobBody,
		},
		{
			path: "educations", name: "Education", minDesc: 100, urlField: "proofLink",
			body: func() map[string]any {
				return map[string]any{
					"title":       "BSc Computer Science",
					"institution": "University of Lagos",
					"location":    "Lagos",
					"startDate":   "2016",
					"endDate":     "2020",
					"grade":       "First class",
					"skills":      []string{"Algorithms"},
				}
			},
		},
		{
			path: "projects", name: "Project", minDesc: 85, urlField: "readmeLink",
			body: func() map[string]any {
				return map[string]any{
					"title":    "Portfolio API",
					"skills":   "Go, Postgres",
					"repoLink": "https://github.com/example/portfolio",
					"featured": true,
				}
			},
		},
		{
			path: "services", name: "Service", minDesc: 100, urlField: "icon",
			body: func() map[string]any {
				return map[string]any{"title": "Backend development"}
			},
		},
	}

	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			base := "/dashboard/" + k.path

			t.Run("Should accept a description of exactly the minimum length", func(t *testing.T) {
				body := k.body()
				body["description"] = strings.Repeat("d", k.minDesc)

				w := env.do(http.MethodPost, base, body, env.session(t, alice))
				assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			})

			t.Run("Should reject a description one character short", func(t *testing.T) {
				body := k.body()
				body["description"] = strings.Repeat("d", k.minDesc-1)

				w := env.do(http.MethodPost, base, body, env.session(t, alice))
				require.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, decode(t, w).Fields, "description")
			})

			t.Run("Should reject a malformed link", func(t *testing.T) {
				body := k.body()
				body["description"] = strings.Repeat("d", k.minDesc)
				body[k.urlField] = "not a url"

				w := env.do(http.MethodPost, base, body, env.session(t, alice))
				require.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "must be a valid URL", decode(t, w).Fields[k.urlField])
			})

			t.Run("Should reject a blank title on patch", func(t *testing.T) {
				body := k.body()
				body["description"] = strings.Repeat("d", k.minDesc)
				w := env.do(http.MethodPost, base, body, env.session(t, alice))
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
				var created domain.Ownership
				require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

				w = env.do(http.MethodPatch, base+"/"+created.ID, map[string]any{"title": "   "}, env.session(t, alice))
				require.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "must not be blank", decode(t, w).Fields["title"])
			})

			t.Run("Should hide the item from another user", func(t *testing.T) {
				body := k.body()
				body["description"] = strings.Repeat("d", k.minDesc)
				w := env.do(http.MethodPost, base, body, env.session(t, alice))
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
				var created domain.Ownership
				require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
				item := base + "/" + created.ID

				w = env.do(http.MethodGet, item, nil, env.session(t, bob))
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.Equal(t, k.name+" not found", decode(t, w).Error)

				w = env.do(http.MethodPatch, item, map[string]any{"title": "Taken over"}, env.session(t, bob))
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.Equal(t, k.name+" not found", decode(t, w).Error)

				w = env.do(http.MethodDelete, item, nil, env.session(t, bob))
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.Equal(t, k.name+" not found", decode(t, w).Error)

				w = env.do(http.MethodGet, item, nil, env.session(t, alice))
				require.Equal(t, http.StatusOK, w.Code)
				assert.NotContains(t, w.Body.String(), "Taken over")
			})
		})
	}
}
