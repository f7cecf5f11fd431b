// Package client is a small Go client for the Beatbook HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config represents the configuration for the Beatbook client
type Config struct {
	// BaseURL is the base URL of the Beatbook service
	BaseURL string
	// Token is the bearer token used on authenticated endpoints
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:4780",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the Beatbook API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new Beatbook client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// SetToken replaces the bearer token used on authenticated endpoints.
func (c *Client) SetToken(token string) {
	c.config.Token = token
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// LoginResponse is the result of a successful login
type LoginResponse struct {
	Ok    bool   `json:"ok"`
	Token string `json:"token"`
}

// Login authenticates with email and password and stores the returned token
// on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var resp LoginResponse
	err := c.post(ctx, c.config.BaseURL+"/api/auth/login",
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}

	c.config.Token = resp.Token
	return &resp, nil
}

// Event mirrors the API's event resource
type Event struct {
	ID              string     `json:"id"`
	OrganizationID  string     `json:"organization_id"`
	OfficerID       string     `json:"officer_id"`
	OfficerName     string     `json:"officer_name"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	InvolvedParties string     `json:"involved_parties"`
	Tags            []Tag      `json:"tags"`
}

// EventPage is one page of an event listing
type EventPage struct {
	Events     []Event `json:"events"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int64   `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// ListEventsOptions are the optional filters for ListEvents
type ListEventsOptions struct {
	Status     string
	StartDate  string
	EndDate    string
	TagIDs     []string
	OfficerIDs []string
	Page       int
	Limit      int
}

// ListEvents returns the caller's visible events
func (c *Client) ListEvents(ctx context.Context, opts ListEventsOptions) (*EventPage, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.StartDate != "" {
		q.Set("start_date", opts.StartDate)
	}
	if opts.EndDate != "" {
		q.Set("end_date", opts.EndDate)
	}
	if len(opts.TagIDs) > 0 {
		q.Set("tag_ids", strings.Join(opts.TagIDs, ","))
	}
	if len(opts.OfficerIDs) > 0 {
		q.Set("officer_ids", strings.Join(opts.OfficerIDs, ","))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	endpoint := c.config.BaseURL + "/api/events/"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var resp EventPage
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateEventRequest describes a new event
type CreateEventRequest struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	InvolvedParties string     `json:"involved_parties,omitempty"`
	TagIDs          []string   `json:"tag_ids,omitempty"`
}

type eventEnvelope struct {
	Ok    bool   `json:"ok"`
	Event *Event `json:"event"`
}

// CreateEvent logs a new event for the authenticated officer
func (c *Client) CreateEvent(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.StartTime.IsZero() {
		return nil, errors.New("start_time is required")
	}

	var resp eventEnvelope
	if err := c.post(ctx, c.config.BaseURL+"/api/events/", req, &resp); err != nil {
		return nil, err
	}
	return resp.Event, nil
}

// UpdateEventRequest carries a partial event edit; nil fields are untouched
type UpdateEventRequest struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	InvolvedParties *string    `json:"involved_parties,omitempty"`
	TagIDs          *[]string  `json:"tag_ids,omitempty"`
}

// UpdateEvent applies a partial edit to an event
func (c *Client) UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*Event, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	var resp eventEnvelope
	if err := c.patch(ctx, c.config.BaseURL+"/api/events/"+id, req, &resp); err != nil {
		return nil, err
	}
	return resp.Event, nil
}

// DeleteEvent removes an event
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	return c.delete(ctx, c.config.BaseURL+"/api/events/"+id)
}

// BulkDeleteEvents removes a set of events and returns the deleted count
func (c *Client) BulkDeleteEvents(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("ids are required")
	}

	var resp struct {
		Ok      bool  `json:"ok"`
		Deleted int64 `json:"deleted"`
	}
	err := c.post(ctx, c.config.BaseURL+"/api/events/bulk-delete",
		map[string][]string{"ids": ids}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// Tag mirrors the API's tag resource
type Tag struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
}

// ListTags returns the organization's tags
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var resp struct {
		Ok   bool  `json:"ok"`
		Tags []Tag `json:"tags"`
	}
	if err := c.get(ctx, c.config.BaseURL+"/api/tags/", &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// CreateTag creates an organization tag. Admin only.
func (c *Client) CreateTag(ctx context.Context, name, color string) (*Tag, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}

	var resp struct {
		Ok  bool `json:"ok"`
		Tag *Tag `json:"tag"`
	}
	err := c.post(ctx, c.config.BaseURL+"/api/tags/",
		map[string]string{"name": name, "color": color}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Tag, nil
}

// DeleteTag removes a tag and detaches it from all events. Admin only.
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}
	return c.delete(ctx, c.config.BaseURL+"/api/tags/"+id)
}

// Invitation mirrors the API's invitation resource
type Invitation struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// SendInvitation invites an email to the organization. Admin only.
func (c *Client) SendInvitation(ctx context.Context, email, role string) (*Invitation, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var resp struct {
		Ok         bool        `json:"ok"`
		Invitation *Invitation `json:"invitation"`
	}
	err := c.post(ctx, c.config.BaseURL+"/api/invitations/",
		map[string]string{"email": email, "role": role}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Invitation, nil
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPost, endpoint, req, resp)
}

// patch performs a PATCH request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) patch(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPatch, endpoint, req, resp)
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	return c.send(ctx, http.MethodGet, endpoint, nil, resp)
}

// delete performs a DELETE request to the specified endpoint
func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.send(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) send(ctx context.Context, method, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	var body *bytes.Buffer
	if req != nil {
		reqBody, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(reqBody)
	} else {
		body = bytes.NewBuffer(nil)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Try to decode error response
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
			// If we can't decode the error, create a generic one
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if resp == nil {
		return nil
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
