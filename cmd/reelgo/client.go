package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps HTTP calls to the reelgo server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new reelgo API client.
func NewClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// apiError is returned for non-2xx responses.
type apiError struct {
	Status  int
	Code    string
	Message string
	Hint    string
}

func (e *apiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d: %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

func (c *Client) do(method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// decodeAPIError extracts {"error","code","hint"} from body, falling back to the raw text.
func decodeAPIError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
		Code  string `json:"code"`
		Hint  string `json:"hint"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &apiError{Status: status, Code: e.Code, Message: e.Error, Hint: e.Hint}
	}
	return &apiError{Status: status, Message: string(bytes.TrimSpace(body))}
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Store     string `json:"store"`
	Search    bool   `json:"search"`
	Watchlist bool   `json:"watchlist"`
}

type MovieResponse struct {
	IMDbID   string  `json:"imdbID"`
	Title    string  `json:"title"`
	Year     string  `json:"year"`
	Rated    string  `json:"rated"`
	Runtime  string  `json:"runtime"`
	Plot     string  `json:"plot"`
	Poster   string  `json:"poster"`
	Rating   float64 `json:"rating"`
	Type     string  `json:"type"`
	Genre    string  `json:"genre"`
	Director string  `json:"director"`
}

type SearchResponse struct {
	Success      bool            `json:"success"`
	Data         []MovieResponse `json:"data"`
	Error        string          `json:"error,omitempty"`
	Code         string          `json:"code,omitempty"`
	TotalPages   int             `json:"totalPages,omitempty"`
	TotalResults int             `json:"totalResults,omitempty"`
	Cached       bool            `json:"cached,omitempty"`
	Hint         string          `json:"hint,omitempty"`
}

type UserResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	CreatedAt string   `json:"createdAt"`
	Watchlist []string `json:"watchlist"`
	Score     int      `json:"score"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ToggleResponse struct {
	Success     bool   `json:"success"`
	InWatchlist bool   `json:"isInWatchlist"`
	Score       int    `json:"score"`
	Error       string `json:"error,omitempty"`
}

type WatchlistResponse struct {
	Success bool            `json:"success"`
	Data    []MovieResponse `json:"data"`
	Error   string          `json:"error,omitempty"`
}

type WatchlistStatusResponse struct {
	IMDbID      string `json:"imdb_id"`
	InWatchlist bool   `json:"in_watchlist"`
}

// SearchOptions are the optional search filters.
type SearchOptions struct {
	Year     string
	Genre    string
	MinScore *float64
	MaxScore *float64
	Sort     string
}

func (o SearchOptions) values() url.Values {
	v := url.Values{}
	if o.Year != "" {
		v.Set("year", o.Year)
	}
	if o.Genre != "" {
		v.Set("genre", o.Genre)
	}
	if o.MinScore != nil {
		v.Set("min_score", strconv.FormatFloat(*o.MinScore, 'f', -1, 64))
	}
	if o.MaxScore != nil {
		v.Set("max_score", strconv.FormatFloat(*o.MaxScore, 'f', -1, 64))
	}
	if o.Sort != "" {
		v.Set("sort", o.Sort)
	}
	return v
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string, opts SearchOptions) (*SearchResponse, error) {
	v := opts.values()
	v.Set("q", query)
	var resp SearchResponse
	if err := c.get("/api/v1/search?"+v.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchAll(query string, endPage int, opts SearchOptions) (*SearchResponse, error) {
	v := opts.values()
	v.Set("q", query)
	if endPage > 0 {
		v.Set("end_page", strconv.Itoa(endPage))
	}
	var resp SearchResponse
	if err := c.get("/api/v1/search/batch?"+v.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(username, password string) (*UserResponse, error) {
	var resp UserResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.post("/api/v1/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.post("/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me() (*UserResponse, error) {
	var resp UserResponse
	if err := c.get("/api/v1/me", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Watchlist() (*WatchlistResponse, error) {
	var resp WatchlistResponse
	if err := c.get("/api/v1/watchlist", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) WatchlistStatus(imdbID string) (*WatchlistStatusResponse, error) {
	var resp WatchlistStatusResponse
	if err := c.get("/api/v1/watchlist/"+url.PathEscape(imdbID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Toggle(imdbID string) (*ToggleResponse, error) {
	var resp ToggleResponse
	if err := c.post("/api/v1/watchlist/"+url.PathEscape(imdbID)+"/toggle", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
