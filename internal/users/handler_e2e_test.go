package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/bootstrap"
	"internship-navigator/internal/shared/config"
)

func buildTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func signupAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Ada Lovelace",
		"email":    email,
		"password": "correct horse",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "correct horse",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var login struct {
		Token           string `json:"token"`
		Name            string `json:"name"`
		ProfileComplete bool   `json:"profileComplete"`
		QuizTaken       bool   `json:"quizTaken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if login.Name != "Ada Lovelace" {
		t.Fatalf("expected name from signup, got %q", login.Name)
	}
	if login.ProfileComplete || login.QuizTaken {
		t.Fatalf("expected fresh account flags false, got %v/%v", login.ProfileComplete, login.QuizTaken)
	}
	return login.Token
}

func TestSignupDuplicateEmail(t *testing.T) {
	router := buildTestApp(t)
	signupAndLogin(t, router, "ada@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "another pass",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := buildTestApp(t)
	signupAndLogin(t, router, "ada@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
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
	if envelope.Error.Message != "Invalid credentials" {
		t.Fatalf("expected credentials message, got %q", envelope.Error.Message)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	router := buildTestApp(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile?email=ada@example.com", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestOnboardingQuizProfileRoundTrip(t *testing.T) {
	router := buildTestApp(t)
	token := signupAndLogin(t, router, "ada@example.com")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/onboarding", token, map[string]string{
		"email":        "ada@example.com",
		"education":    "Bachelor's Degree",
		"fieldOfStudy": "Computer Science",
		"skills":       "Python, SQL",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("onboarding: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// An unanswered slot is rejected before anything is stored.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/quiz", token, map[string]any{
		"email":   "ada@example.com",
		"answers": []string{"fast-paced", "", "team-oriented", "startup-culture", "impact-driven"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("incomplete quiz: expected status 400, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/quiz", token, map[string]any{
		"email":   "ada@example.com",
		"answers": []string{"fast-paced", "analytical", "team-oriented", "startup-culture", "impact-driven"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("quiz: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/profile?email=ada@example.com", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get profile: expected status 200, got %d", resp.Code)
	}
	var profile struct {
		Email           string `json:"email"`
		Name            string `json:"name"`
		Education       string `json:"education"`
		FieldOfStudy    string `json:"fieldOfStudy"`
		Skills          string `json:"skills"`
		QuizTags        string `json:"quizTags"`
		ProfileComplete bool   `json:"profileComplete"`
		QuizTaken       bool   `json:"quizTaken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if !profile.ProfileComplete || !profile.QuizTaken {
		t.Fatalf("expected flags set, got %v/%v", profile.ProfileComplete, profile.QuizTaken)
	}
	if profile.Education != "Bachelor's Degree" || profile.FieldOfStudy != "Computer Science" {
		t.Fatalf("unexpected education fields: %q %q", profile.Education, profile.FieldOfStudy)
	}
	if profile.QuizTags != "fast-paced, analytical, team-oriented, startup-culture, impact-driven" {
		t.Fatalf("unexpected quiz tags: %q", profile.QuizTags)
	}

	// Partial update touches only the provided fields.
	resp = doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"email": "ada@example.com",
		"name":  "Jane Doe",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update profile: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/profile?email=ada@example.com", token, nil)
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Name != "Jane Doe" {
		t.Fatalf("expected updated name, got %q", profile.Name)
	}
	if profile.Skills != "Python, SQL" {
		t.Fatalf("expected skills untouched, got %q", profile.Skills)
	}
}

func TestProfileNotFound(t *testing.T) {
	router := buildTestApp(t)
	token := signupAndLogin(t, router, "ada@example.com")

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile?email=nobody@example.com", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
