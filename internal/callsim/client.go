package callsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/avenka29/Hackathon-NCSU/internal/logging"
)

const (
	// DefaultBaseURL is where the service listens during local development.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single request. Feedback generation calls an
	// LLM on the service side, so this is generous.
	DefaultTimeout = 60 * time.Second

	// DefaultScenarioID is the scenario used when none is chosen.
	DefaultScenarioID = "bank_fraud"

	// maxErrorBodyBytes caps how much of an error body is read.
	maxErrorBodyBytes = 64 << 10

	callAPIPrefix     = "/api/call"
	scenarioAPIPrefix = "/api/scenarios"
)

// phonePattern mirrors the validation the service applies to initiate requests.
var phonePattern = regexp.MustCompile(`^\+?1?\d{10,15}$`) //nolint:gochecknoglobals // Compiled once.

// ValidatePhoneNumber checks a phone number against the service's accepted format.
func ValidatePhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, phone)
	}
	return nil
}

// API is the subset of the Call Simulation Service the review console consumes.
type API interface {
	ListCalls(ctx context.Context, phoneNumber string) ([]CallSummary, error)
	GetAudit(ctx context.Context, callSID string) (AuditRecord, error)
	GetFeedback(ctx context.Context, callSID string) (string, error)
	InitiateCall(ctx context.Context, req InitiateRequest) (InitiateResponse, error)
}

// Client talks to the Call Simulation Service over HTTP/JSON.
type Client struct {
	// BaseURL is the service root, e.g. http://localhost:8000.
	BaseURL string

	// HTTPClient performs requests. Tests replace it with httptest clients.
	HTTPClient *http.Client

	// UserAgent is sent with every request when set.
	UserAgent string
}

// NewClient creates a client for baseURL with the given per-request timeout.
// An empty baseURL selects DefaultBaseURL and a non-positive timeout selects
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ListCalls returns call summaries in the order the service sends them.
// A non-empty phoneNumber restricts the list to calls placed to that number.
func (c *Client) ListCalls(ctx context.Context, phoneNumber string) ([]CallSummary, error) {
	var query url.Values
	if phoneNumber != "" {
		query = url.Values{"phone_number": []string{phoneNumber}}
	}

	var resp listCallsResponse
	if err := c.do(ctx, http.MethodGet, callAPIPrefix+"/audit/list", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}
	if resp.Calls == nil {
		return []CallSummary{}, nil
	}

	log := logging.FromContext(ctx)
	for _, call := range resp.Calls {
		if !call.Status.IsKnown() {
			log.Debug().Ctx(ctx).
				Str("call_sid", call.CallSID).
				Str("status", string(call.Status)).
				Msg("unrecognised call status, showing it verbatim")
		}
	}
	return resp.Calls, nil
}

// GetAudit fetches the full audit record for one call.
func (c *Client) GetAudit(ctx context.Context, callSID string) (AuditRecord, error) {
	if callSID == "" {
		return AuditRecord{}, ErrEmptyCallSID
	}

	var rec AuditRecord
	path := callAPIPrefix + "/audit/" + url.PathEscape(callSID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rec); err != nil {
		return AuditRecord{}, fmt.Errorf("fetching audit for %s: %w", callSID, err)
	}
	return rec, nil
}

// GetFeedback asks the service for AI coaching feedback on one call.
func (c *Client) GetFeedback(ctx context.Context, callSID string) (string, error) {
	if callSID == "" {
		return "", ErrEmptyCallSID
	}

	var resp feedbackResponse
	path := callAPIPrefix + "/" + url.PathEscape(callSID) + "/feedback"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return "", fmt.Errorf("fetching feedback for %s: %w", callSID, err)
	}
	return resp.Feedback, nil
}

// GetCallStatus returns the current session state of a call.
func (c *Client) GetCallStatus(ctx context.Context, callSID string) (CallSummary, error) {
	if callSID == "" {
		return CallSummary{}, ErrEmptyCallSID
	}

	var summary CallSummary
	path := callAPIPrefix + "/" + url.PathEscape(callSID) + "/status"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &summary); err != nil {
		return CallSummary{}, fmt.Errorf("fetching status for %s: %w", callSID, err)
	}
	return summary, nil
}

// InitiateCall asks the service to place a simulated scam call.
func (c *Client) InitiateCall(ctx context.Context, req InitiateRequest) (InitiateResponse, error) {
	if err := ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return InitiateResponse{}, err
	}
	if req.ScenarioID == "" {
		req.ScenarioID = DefaultScenarioID
	}

	var resp InitiateResponse
	if err := c.do(ctx, http.MethodPost, callAPIPrefix+"/initiate", nil, req, &resp); err != nil {
		return InitiateResponse{}, fmt.Errorf("initiating call: %w", err)
	}
	return resp, nil
}

// ListScenarios returns the training scenarios the service can play.
func (c *Client) ListScenarios(ctx context.Context) ([]Scenario, error) {
	var scenarios []Scenario
	if err := c.do(ctx, http.MethodGet, scenarioAPIPrefix+"/", nil, nil, &scenarios); err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	return scenarios, nil
}

// ServiceInfo returns the name and version advertised at the service root.
func (c *Client) ServiceInfo(ctx context.Context) (ServiceInfo, error) {
	var info ServiceInfo
	if err := c.do(ctx, http.MethodGet, "/", nil, nil, &info); err != nil {
		return ServiceInfo{}, fmt.Errorf("fetching service info: %w", err)
	}
	return info, nil
}

// Health returns nil when the service reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return fmt.Errorf("checking health: %w", err)
	}
	if resp.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, resp.Status)
	}
	return nil
}

// do performs one request and decodes a JSON response into out.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	out any,
) error {
	log := logging.FromContext(ctx)

	endpoint := c.baseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(logging.TraceIDHeader, traceID)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	log.Debug().
		Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("service request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return newAPIError(resp.StatusCode, errBody)
	}

	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}
	return nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return c.HTTPClient
}
