package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/blackcoderx/collie/pkg/core"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 5
	maxBodySize      = 32 << 20
)

// WorkspaceSource fetches resources from a workspace server at
// GET {server}/v1/access-tokens/{type}/{id}.
type WorkspaceSource struct {
	client      *http.Client
	credentials *clientcredentials.Config
	limiter     *rate.Limiter
}

// WorkspaceOption configures a WorkspaceSource.
type WorkspaceOption func(*WorkspaceSource)

// WithHTTPClient sets the client used for requests and token exchanges.
func WithHTTPClient(c *http.Client) WorkspaceOption {
	return func(s *WorkspaceSource) {
		s.client = c
	}
}

// WithRateLimit paces requests to rps per second. A non-positive rate
// disables pacing.
func WithRateLimit(rps float64) WorkspaceOption {
	return func(s *WorkspaceSource) {
		if rps <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithClientCredentials obtains bearer tokens through the OAuth2 client
// credentials grant instead of using the request's access token.
func WithClientCredentials(cfg clientcredentials.Config) WorkspaceOption {
	return func(s *WorkspaceSource) {
		if cfg.ClientID == "" || cfg.TokenURL == "" {
			return
		}
		s.credentials = &cfg
	}
}

// NewWorkspaceSource creates a remote source.
func NewWorkspaceSource(opts ...WorkspaceOption) *WorkspaceSource {
	s := &WorkspaceSource{
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasCredentials reports whether the source can authenticate without an
// access token.
func (s *WorkspaceSource) HasCredentials() bool {
	return s.credentials != nil
}

// Contents fetches and decodes a remote resource.
func (s *WorkspaceSource) Contents(ctx context.Context, req Request) (any, error) {
	endpoint, err := resourceURL(req)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, core.Unknown(fmt.Errorf("failed to wait for rate limiter: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, core.Unknown(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")

	log.Debug().Str("source", "workspace").Str("id", req.PathOrID).Str("type", string(req.Type)).Msg("fetching resource")

	start := time.Now()
	resp, err := s.authorizedClient(ctx, req.AccessToken).Do(httpReq)
	if err != nil {
		return nil, transportError(req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, core.Unknown(fmt.Errorf("failed to read response: %w", err))
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(body)).
		Msg("workspace response")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return decodeContent(body)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, tokenError(req, body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, &core.Error{Code: core.CodeInvalidID, Path: req.PathOrID}
	default:
		return nil, core.Unknown(fmt.Errorf("unexpected response status: %s", resp.Status))
	}
}

func (s *WorkspaceSource) authorizedClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)

	var src oauth2.TokenSource
	if s.credentials != nil {
		src = s.credentials.TokenSource(ctx)
	} else {
		src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}

	client := oauth2.NewClient(ctx, src)
	client.Timeout = s.client.Timeout
	return client
}

func resourceURL(req Request) (string, error) {
	invalid := invalidServerURL(req.ServerURL)

	u, err := url.Parse(strings.TrimSpace(req.ServerURL))
	if err != nil {
		invalid.Cause = err
		return "", invalid
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid
	}

	return strings.TrimRight(u.String(), "/") + "/v1/access-tokens/" + string(req.Type) + "/" + url.PathEscape(req.PathOrID), nil
}

func invalidServerURL(server string) *core.Error {
	e := &core.Error{Code: core.CodeInvalidServerURL}
	if server != "" {
		e.Data = server
	}
	return e
}

func transportError(req Request, err error) error {
	var retrieveErr *oauth2.RetrieveError
	switch {
	case errors.As(err, &retrieveErr):
		return &core.Error{Code: core.CodeTokenInvalid, Cause: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &core.Error{Code: core.CodeConnectionRefused, Data: req.ServerURL, Cause: err}
	default:
		return core.Unknown(fmt.Errorf("failed to execute request: %w", err))
	}
}

// tokenError distinguishes expired tokens from otherwise rejected ones using
// the reason or message the server reports.
func tokenError(req Request, body []byte) error {
	var payload struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	text := strings.ToLower(payload.Reason + " " + payload.Message)
	if strings.Contains(text, "expired") {
		return &core.Error{Code: core.CodeTokenExpired, Path: req.PathOrID}
	}
	return &core.Error{Code: core.CodeTokenInvalid, Path: req.PathOrID}
}

// decodeContent unwraps the "data" envelope. A string payload holds JSON
// text and is decoded again.
func decodeContent(body []byte) (any, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, core.Unknown(fmt.Errorf("failed to parse response: %w", err))
	}

	envelope, ok := decoded.(map[string]any)
	if !ok {
		return decoded, nil
	}
	data, ok := envelope["data"]
	if !ok {
		return decoded, nil
	}

	text, ok := data.(string)
	if !ok {
		return data, nil
	}
	var content any
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, core.Unknown(fmt.Errorf("failed to parse resource data: %w", err))
	}
	return content, nil
}
