package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultEndpoint = "https://api.github.com/graphql"

// ResolveToken attempts to find a GitHub token from:
// 1. Config file (if passed)
// 2. "gh auth token" command
// 3. GITHUB_TOKEN environment variable
func ResolveToken(configToken string) string {
	if configToken != "" {
		return configToken
	}

	cmd := exec.Command("gh", "auth", "token")
	out, err := cmd.Output()
	if err == nil {
		token := strings.TrimSpace(string(out))
		if token != "" {
			return token
		}
	}

	return os.Getenv("GITHUB_TOKEN")
}

// APIError is a non-transport failure reported by the GraphQL endpoint:
// either an HTTP error status or a populated errors array.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("github api: %s", strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("github api: HTTP %d", e.StatusCode)
}

// Client wraps an authenticated GraphQL executor plus a REST client for
// the few operations GraphQL does not cover (rate limit, viewer lookup).
type Client struct {
	httpc    *http.Client
	rest     *github.Client
	limiter  *rate.Limiter
	endpoint string
	log      *logrus.Logger
}

// NewClient builds a client for the given token. An empty token yields an
// unauthenticated client; GraphQL calls will fail with 401 but the REST
// rate-limit probe still works.
func NewClient(token string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	httpc := http.DefaultClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpc = oauth2.NewClient(context.Background(), src)
	}
	return &Client{
		httpc: httpc,
		rest:  github.NewClient(httpc),
		// GitHub scores GraphQL calls by point cost, not request count;
		// 2 req/s keeps a full triage run well under the secondary limits.
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		endpoint: defaultEndpoint,
		log:      log,
	}
}

// Viewer returns the login of the authenticated user.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	u, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("fetching viewer: %w", err)
	}
	return u.GetLogin(), nil
}

// RateLimit returns the core REST rate bucket. Used as a cheap preflight
// before a run that will issue many GraphQL calls.
func (c *Client) RateLimit(ctx context.Context) (*github.Rate, error) {
	limits, _, err := c.rest.RateLimit.Get(ctx)
	if err != nil {
		return nil, err
	}
	return limits.Core, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query executes one GraphQL request and unmarshals the data field into out.
func (c *Client) Query(ctx context.Context, query string, vars map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(raw),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("graphql call")

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(gr.Errors) > 0 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		for _, e := range gr.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return apiErr
	}
	if out != nil {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type connection struct {
	Edges []struct {
		Node json.RawMessage `json:"node"`
	} `json:"edges"`
	PageInfo pageInfo `json:"pageInfo"`
}

// QueryNodes follows a paginated connection at path inside the response
// (e.g. ["repository", "pullRequests"]) until limit nodes are collected
// or the connection is exhausted. The query must declare $first and a
// nullable $cursor.
func (c *Client) QueryNodes(ctx context.Context, query string, vars map[string]any, path []string, limit int) ([]json.RawMessage, error) {
	var nodes []json.RawMessage
	var cursor *string

	for {
		pageSize := 100
		if remaining := limit - len(nodes); remaining < pageSize {
			pageSize = remaining
		}
		if pageSize <= 0 {
			break
		}

		pageVars := make(map[string]any, len(vars)+2)
		for k, v := range vars {
			pageVars[k] = v
		}
		pageVars["first"] = pageSize
		pageVars["cursor"] = cursor

		var data json.RawMessage
		if err := c.Query(ctx, query, pageVars, &data); err != nil {
			return nil, err
		}

		conn, err := digConnection(data, path)
		if err != nil {
			return nil, err
		}
		for _, edge := range conn.Edges {
			nodes = append(nodes, edge.Node)
		}
		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == nil {
			break
		}
		cursor = conn.PageInfo.EndCursor
	}
	return nodes, nil
}

func digConnection(data json.RawMessage, path []string) (*connection, error) {
	cur := data
	for _, key := range path {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(cur, &m); err != nil {
			return nil, fmt.Errorf("walking %q: %w", key, err)
		}
		next, ok := m[key]
		if !ok || string(next) == "null" {
			return nil, fmt.Errorf("response missing %q", key)
		}
		cur = next
	}
	var conn connection
	if err := json.Unmarshal(cur, &conn); err != nil {
		return nil, fmt.Errorf("decoding connection: %w", err)
	}
	return &conn, nil
}
