package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
)

type fakeUserService struct {
	registerErr error
	lastReq     userdomain.RegisterUserRequest
	users       map[string]userdomain.User
}

func (f *fakeUserService) Register(ctx context.Context, req userdomain.RegisterUserRequest) (userdomain.User, error) {
	f.lastReq = req
	_ = ctx
	if f.registerErr != nil {
		return userdomain.User{}, f.registerErr
	}
	return userdomain.User{ID: 42, Email: strings.ToLower(req.Email), Active: true}, nil
}

func (f *fakeUserService) Me(ctx context.Context) (userdomain.User, error) {
	_ = ctx
	return userdomain.User{}, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (userdomain.User, error) {
	_ = ctx
	user, ok := f.users[id]
	if !ok {
		return userdomain.User{}, userdomain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserService) UpdateNotificationSettings(ctx context.Context, req userdomain.UpdateNotificationSettingsRequest) (userdomain.User, error) {
	_ = ctx
	_ = req
	return userdomain.User{}, nil
}

func (f *fakeUserService) SetPushToken(ctx context.Context, registrationID string) error {
	_ = ctx
	_ = registrationID
	return nil
}

func (f *fakeUserService) Deactivate(ctx context.Context) error {
	_ = ctx
	return nil
}

func newTestRouter(srv *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	return router
}

func TestRegisterUserHandler(t *testing.T) {
	usersvc := &fakeUserService{}
	srv := &Server{usersvc: usersvc}

	router := newTestRouter(srv)
	router.POST("/api/users", srv.RegisterUser)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{"name":"Riley","email":"riley@example.com","terms_accepted":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if usersvc.lastReq.Email != "riley@example.com" {
		t.Fatalf("unexpected email passed to service: %q", usersvc.lastReq.Email)
	}
	if !strings.Contains(resp.Body.String(), `"data"`) {
		t.Fatalf("expected data envelope, got %s", resp.Body.String())
	}
}

func TestRegisterUserHandlerBadJSON(t *testing.T) {
	srv := &Server{usersvc: &fakeUserService{}}

	router := newTestRouter(srv)
	router.POST("/api/users", srv.RegisterUser)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestRegisterUserHandlerEmailTaken(t *testing.T) {
	srv := &Server{usersvc: &fakeUserService{registerErr: userdomain.ErrEmailTaken}}

	router := newTestRouter(srv)
	router.POST("/api/users", srv.RegisterUser)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{"name":"Riley","email":"riley@example.com","terms_accepted":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestIdentityMiddleware(t *testing.T) {
	usersvc := &fakeUserService{users: map[string]userdomain.User{
		"7": {ID: 7, Active: true},
		"8": {ID: 8, Active: false},
		"9": {ID: 9, Active: true, Admin: true},
	}}
	srv := &Server{usersvc: usersvc}

	router := newTestRouter(srv)
	router.Use(srv.Identity())
	router.GET("/whoami", func(c *gin.Context) {
		userID, ok := usercontext.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID.String(),
			"known":   ok,
			"admin":   usercontext.IsAdmin(c.Request.Context()),
		})
	})

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantBody: `"known":false`},
		{name: "active user", header: "7", wantStatus: http.StatusOK, wantBody: `"user_id":"7"`},
		{name: "inactive user", header: "8", wantStatus: http.StatusForbidden},
		{name: "admin", header: "9", wantStatus: http.StatusOK, wantBody: `"admin":true`},
		{name: "unknown user", header: "12345", wantStatus: http.StatusUnauthorized},
		{name: "garbage id", header: "not-a-number", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(HeaderUserID, tc.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.wantStatus, resp.Code, resp.Body.String())
			}
			if tc.wantBody != "" && !strings.Contains(resp.Body.String(), tc.wantBody) {
				t.Fatalf("expected body to contain %s, got %s", tc.wantBody, resp.Body.String())
			}
		})
	}
}
