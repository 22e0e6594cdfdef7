package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/friendsmeet/internal/auth"
	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/pkg/api"
	"github.com/mmynk/friendsmeet/pkg/api/apiconnect"
)

// whoAmI echoes the caller identity found in the request context.
type whoAmI struct{}

func (whoAmI) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return connect.NewResponse(&api.RegisterResponse{}), nil
}

func (whoAmI) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return connect.NewResponse(&api.LoginResponse{User: &api.User{ID: GetUserID(ctx)}}), nil
}

func (whoAmI) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

func (whoAmI) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{User: &api.User{
		ID:          GetUserID(ctx),
		Email:       GetEmail(ctx),
		DisplayName: GetName(ctx),
	}}), nil
}

func setupServer(t *testing.T, jwtManager *auth.JWTManager) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(whoAmI{},
		[]connect.HandlerOption{connect.WithInterceptors(LoggingInterceptor(), OptionalAuth(jwtManager))},
		[]connect.HandlerOption{connect.WithInterceptors(LoggingInterceptor(), RequireAuth(jwtManager))},
	))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	url := setupServer(t, jwtManager)

	user := &models.User{ID: "user-1", Email: "alice@example.com", DisplayName: "Alice"}
	token, err := jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		client := apiconnect.NewAuthServiceClient(http.DefaultClient, url,
			connect.WithInterceptors(BearerToken(token)),
		)
		resp, err := client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		got := resp.Msg.User
		if got.ID != "user-1" || got.Email != "alice@example.com" || got.DisplayName != "Alice" {
			t.Errorf("unexpected identity in context: %+v", got)
		}
	})

	otherManager := auth.NewJWTManager("other-secret", time.Hour)
	foreign, err := otherManager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong signing key", "Bearer " + foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := apiconnect.NewAuthServiceClient(http.DefaultClient, url)
			req := connect.NewRequest(&api.GetCurrentUserRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := client.GetCurrentUser(context.Background(), req)
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("expected Unauthenticated, got %v", err)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	url := setupServer(t, jwtManager)

	anonymous := apiconnect.NewAuthServiceClient(http.DefaultClient, url)
	resp, err := anonymous.Login(context.Background(), connect.NewRequest(&api.LoginRequest{}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.ID != "" {
		t.Errorf("expected anonymous caller, got %s", resp.Msg.User.ID)
	}

	token, err := jwtManager.Generate(&models.User{ID: "user-2", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	authed := apiconnect.NewAuthServiceClient(http.DefaultClient, url, connect.WithInterceptors(BearerToken(token)))
	resp, err = authed.Login(context.Background(), connect.NewRequest(&api.LoginRequest{}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.ID != "user-2" {
		t.Errorf("expected user-2, got %s", resp.Msg.User.ID)
	}
}

func TestWithUser(t *testing.T) {
	ctx := WithUser(context.Background(), "user-1", "alice@example.com", "Alice")

	if got := GetUserID(ctx); got != "user-1" {
		t.Errorf("GetUserID: got %s", got)
	}
	if got := GetEmail(ctx); got != "alice@example.com" {
		t.Errorf("GetEmail: got %s", got)
	}
	if got := GetName(ctx); got != "Alice" {
		t.Errorf("GetName: got %s", got)
	}

	if GetUserID(context.Background()) != "" {
		t.Error("expected empty user ID on a bare context")
	}
}
