package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// AgentLocationProvider talks to the paired location agent (the device
// daemon that owns the GPS) over HTTP.
type AgentLocationProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

var _ LocationProvider = (*AgentLocationProvider)(nil)

// NewAgentLocationProvider creates a new instance, reading config from environment variables
func NewAgentLocationProvider() *AgentLocationProvider {
	baseURL := os.Getenv("LOCATION_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090/v1" // Default
	}
	apiKey := os.Getenv("LOCATION_API_KEY")
	// No client-level timeout: every call is bounded by the caller's ctx,
	// and the session service distinguishes deadline from transport error.
	client := &http.Client{}
	return &AgentLocationProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  client,
	}
}

// helper: does GET with auth header, parses json into result, returns status code
func (p *AgentLocationProvider) doGET(ctx context.Context, endpoint string, result interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.BaseURL+endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return resp.StatusCode, ErrPermissionDenied
	}
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, ErrNoFix
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(result)
}

type permissionResponse struct {
	Granted bool `json:"granted"`
}

func (p *AgentLocationProvider) RequestPermission(ctx context.Context) (bool, error) {
	var body permissionResponse
	if _, err := p.doGET(ctx, "/permission", &body); err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return false, nil
		}
		return false, err
	}
	return body.Granted, nil
}

// CurrentFix asks the agent for the current position. A ctx deadline is
// reported as ErrLocationTimeout so the flight can continue without
// coordinates while the caller shows a timeout-specific notice.
func (p *AgentLocationProvider) CurrentFix(ctx context.Context) (*Fix, error) {
	var fix Fix
	if _, err := p.doGET(ctx, "/position", &fix); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrLocationTimeout
		}
		return nil, err
	}
	return &fix, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
