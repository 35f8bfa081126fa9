package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workspace-service/internal/handler"
	"workspace-service/internal/middleware"
	"workspace-service/internal/model"
	"workspace-service/internal/tenant"
	"workspace-service/pkg/config"
	"workspace-service/pkg/jwtutil"
)

type fakeTenantStore struct {
	mu      sync.Mutex
	tenants map[string]*model.Tenant
	nextID  uint
}

func (s *fakeTenantStore) FindByTenantID(ctx context.Context, tenantID string) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tenants[tenantID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeTenantStore) Create(ctx context.Context, t *model.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.TenantID]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.nextID++
	t.ID = s.nextID
	copied := *t
	s.tenants[t.TenantID] = &copied
	return nil
}

func (s *fakeTenantStore) Save(ctx context.Context, t *model.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.TenantID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *t
	s.tenants[t.TenantID] = &copied
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  []*model.User
	nextID uint
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, tenantID, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TenantID == tenantID && u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TenantID == user.TenantID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users = append(s.users, &copied)
	return nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, tenantID, email string, role model.Role) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TenantID == tenantID && u.Email == email {
			u.Role = role
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePostStore struct {
	mu     sync.Mutex
	posts  []*model.Post
	nextID uint
}

func (s *fakePostStore) ListByTenant(ctx context.Context, tenantID string) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, 0)
	for _, p := range s.posts {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakePostStore) Create(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	copied := *post
	s.posts = append(s.posts, &copied)
	return nil
}

func (s *fakePostStore) DeleteScoped(ctx context.Context, tenantID string, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id && p.TenantID == tenantID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// app wires the full route table the way cmd/main.go does, over
// in-memory stores.
type app struct {
	e       *echo.Echo
	users   *fakeUserStore
	posts   *fakePostStore
	tenants *fakeTenantStore
	tokens  *jwtutil.JWTUtil
}

func newApp(cfg *config.Config) *app {
	if cfg == nil {
		cfg = &config.Config{
			JWT: config.JWTConfig{SigningKey: "test-key", ExpiresIn: time.Hour},
		}
	}
	users := &fakeUserStore{}
	posts := &fakePostStore{}
	tenants := &fakeTenantStore{tenants: map[string]*model.Tenant{}}
	directory := tenant.NewDirectory(tenants, tenant.DefaultSeeds(), nil)
	tokens := jwtutil.NewJWTUtil(&cfg.JWT)

	h := handler.New(users, posts, directory, tokens, cfg)

	e := echo.New()

	user := e.Group("/api/user")
	user.POST("/register", h.Register)
	user.POST("/login", h.Login)
	user.GET("/me", h.Me, middleware.Auth(tokens))
	user.PUT("/role", h.UpdateRole,
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory),
		middleware.RequireRoles(model.RoleAdmin))

	tenantPosts := e.Group("/api/tenants/:tenantId/posts",
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory))
	tenantPosts.GET("", h.ListPosts,
		middleware.RequireRoles(model.RoleViewer, model.RoleEditor, model.RoleAdmin))
	tenantPosts.POST("", h.CreatePost,
		middleware.RequireRoles(model.RoleEditor, model.RoleAdmin))
	tenantPosts.DELETE("/:id", h.DeletePost,
		middleware.RequireRoles(model.RoleAdmin))

	admin := e.Group("/api/admin",
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory),
		middleware.RequireRoles(model.RoleAdmin))
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.UpdateSettings)

	return &app{e: e, users: users, posts: posts, tenants: tenants, tokens: tokens}
}

func (a *app) request(method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// seedUser creates a user directly in the fake stores, ensures their
// tenant exists, and returns a bearer token for them.
func (a *app) seedUser(t *testing.T, tenantID, email string, role model.Role) (*model.User, string) {
	t.Helper()
	_, err := tenant.NewDirectory(a.tenants, tenant.DefaultSeeds(), nil).Ensure(context.Background(), tenantID)
	require.NoError(t, err)

	user := &model.User{
		Name:     "Seed User",
		Email:    email,
		Password: "$2a$10$invalidhashforseedusersonly000000000000000000000000000",
		TenantID: tenantID,
		Role:     role,
	}
	require.NoError(t, a.users.Create(context.Background(), user))

	token, err := a.tokens.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, message, body["message"])
}
