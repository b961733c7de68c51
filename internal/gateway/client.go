package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client is the typed HTTP client for the navigator API. It is the only
// component that talks to the remote backend; flows depend on it through
// request/response contracts alone.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New builds a client for the API at baseURL (scheme://host[:port], no path).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer credential used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// LoginResult is the successful authenticate response.
type LoginResult struct {
	Token           string `json:"token"`
	Name            string `json:"name"`
	ProfileComplete bool   `json:"profileComplete"`
	QuizTaken       bool   `json:"quizTaken"`
}

// ResumeExtraction is what the analyzer returns for an uploaded document.
type ResumeExtraction struct {
	Name   string   `json:"name"`
	Skills []string `json:"extractedSkills"`
}

// Profile is the remote profile record.
type Profile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Education       string `json:"education"`
	FieldOfStudy    string `json:"fieldOfStudy"`
	Skills          string `json:"skills"`
	QuizTags        string `json:"quizTags"`
	ProfileComplete bool   `json:"profileComplete"`
	QuizTaken       bool   `json:"quizTaken"`
}

// Internship is a posting record, consumed read-only for display.
type Internship struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Stipend     string   `json:"stipend"`
	Description string   `json:"description"`
	MatchScore  int      `json:"matchScore"`
	FitTags     []string `json:"fitTags"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signup", body, nil)
}

// Authenticate exchanges credentials for a token and the session flags.
func (c *Client) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

// SubmitOnboarding sends the completed onboarding profile.
func (c *Client) SubmitOnboarding(ctx context.Context, email, education, fieldOfStudy, skills string) error {
	body := map[string]string{
		"email":        email,
		"education":    education,
		"fieldOfStudy": fieldOfStudy,
		"skills":       skills,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/onboarding", body, nil)
}

// SubmitQuiz sends the ordered answer list.
func (c *Client) SubmitQuiz(ctx context.Context, email string, answers []string) error {
	body := map[string]any{"email": email, "answers": answers}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/quiz", body, nil)
}

// UpdateProfile partially updates name and skills. Nil fields are left alone.
func (c *Client) UpdateProfile(ctx context.Context, email string, name, skills *string) error {
	body := map[string]any{"email": email}
	if name != nil {
		body["name"] = *name
	}
	if skills != nil {
		body["skills"] = *skills
	}
	return c.doJSON(ctx, http.MethodPut, "/api/v1/profile", body, nil)
}

// GetProfile fetches the profile record for email.
func (c *Client) GetProfile(ctx context.Context, email string) (Profile, error) {
	path := "/api/v1/profile?email=" + url.QueryEscape(email)
	var out Profile
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Profile{}, err
	}
	return out, nil
}

// ListInternships fetches the posting list.
func (c *Client) ListInternships(ctx context.Context) ([]Internship, error) {
	var out []Internship
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/internships", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadResume sends the document as multipart and returns the extraction.
func (c *Client) UploadResume(ctx context.Context, fileName string, doc io.Reader) (ResumeExtraction, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", fileName)
	if err != nil {
		return ResumeExtraction{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, doc); err != nil {
		return ResumeExtraction{}, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ResumeExtraction{}, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/resume", &buf)
	if err != nil {
		return ResumeExtraction{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out ResumeExtraction
	if err := c.send(req, &out); err != nil {
		return ResumeExtraction{}, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
