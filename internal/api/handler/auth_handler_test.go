package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

// stubUserService implements ports.UserService; unset functions panic.
type stubUserService struct {
	getByIDFn       func(ctx context.Context, id string) (*ports.ProfileView, error)
	getByUsernameFn func(ctx context.Context, username string) (*ports.ProfileView, error)
	updateFn        func(ctx context.Context, in ports.UpdateProfileInput) (*ports.ProfileView, error)
	toggleFollowFn  func(ctx context.Context, actorID, username string) (*ports.FollowResult, error)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*ports.ProfileView, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*ports.ProfileView, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.ProfileView, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUserService) ToggleFollow(ctx context.Context, actorID, username string) (*ports.FollowResult, error) {
	return s.toggleFollowFn(ctx, actorID, username)
}

func (s *stubUserService) IsFollowing(context.Context, string, string) (bool, error) {
	panic("not implemented")
}

func (s *stubUserService) Followers(context.Context, string) ([]domain.UserSummary, error) {
	panic("not implemented")
}

func (s *stubUserService) Following(context.Context, string) ([]domain.UserSummary, error) {
	panic("not implemented")
}

func profileOf(u *domain.User) *ports.ProfileView {
	return &ports.ProfileView{User: u, Followers: []domain.UserSummary{}, Following: []domain.UserSummary{}}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Username != "alice" || in.Email != "a@x.com" || in.FullName != "Alice A" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{Token: "token123", User: &domain.User{ID: "u1", Username: in.Username, Email: in.Email}}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	body := strings.NewReader(`{"username":"alice","email":"a@x.com","password":"secret1","fullName":"Alice A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if resp["success"] != true || resp["token"] != "token123" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["_id"] != "u1" || user["username"] != "alice" || user["email"] != "a@x.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must never be rendered")
	}
}

func TestAuthHandler_Register_ServiceErrorIsReturned(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	user := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", Following: []string{"u2"}}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{Token: "token123", User: user}, nil
		},
	}
	users := &stubUserService{
		getByIDFn: func(ctx context.Context, id string) (*ports.ProfileView, error) {
			v := profileOf(user)
			v.Following = []domain.UserSummary{{ID: "u2", Username: "bob"}}
			return v, nil
		},
	}
	handler := NewAuthHandler(stub, users)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if resp.Token != "token123" {
		t.Fatalf("expected token, got %v", resp.Token)
	}
	if resp.User.FollowingCount != 1 || len(resp.User.Following) != 1 || resp.User.Following[0].Username != "bob" {
		t.Fatalf("expected populated following, got %+v", resp.User)
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	ve, ok := err.(domain.ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T %v", err, err)
	}
	if len(ve) != 2 || ve[0].Field != "email" || ve[1].Field != "password" {
		t.Fatalf("unexpected field errors: %+v", ve)
	}
}

func TestAuthHandler_Me_RequiresUser(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		getByIDFn: func(ctx context.Context, id string) (*ports.ProfileView, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %s", id)
			}
			return profileOf(&domain.User{ID: "u1", Username: "alice", Email: "a@x.com"}), nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextUserID, "u1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.Email != "a@x.com" {
		t.Fatalf("self view must include email, got %+v", resp.User)
	}
}
