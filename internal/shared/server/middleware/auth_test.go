package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/shared/auth"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth())
	r.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/internships", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":    UserIDFromContext(c),
			"userEmail": UserEmailFromContext(c),
			"userName":  UserNameFromContext(c),
		})
	})
	return r
}

func TestAuthSkipsPublicPaths(t *testing.T) {
	router := authRouter()

	for _, path := range []string{"/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/internships", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Message != "Authorization token is missing" {
		t.Fatalf("unexpected message: %q", envelope.Error.Message)
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	router := authRouter()

	for _, header := range []string{"Token abc", "Bearer ", "Bearer not.a.jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/internships", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected status 401, got %d", header, resp.Code)
		}
	}
}

func TestAuthStoresIdentityInContext(t *testing.T) {
	router := authRouter()

	token, err := auth.SignJWT(auth.Claims{Sub: "user-1", Email: "ada@example.com", Name: "Ada"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/internships", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["userId"] != "user-1" || body["userEmail"] != "ada@example.com" || body["userName"] != "Ada" {
		t.Fatalf("unexpected identity: %v", body)
	}
}
