package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikematt33/ghscope/internal/cache"
	"github.com/mikematt33/ghscope/pkg/models"
)

// DefaultPRLimit bounds how many PRs a single run pulls per state.
const DefaultPRLimit = 200

// Fetcher pairs the API client with the disk cache for one repository.
// Every fetch goes cache-first unless NoCache is set; in Offline mode
// only the cache is consulted and a miss yields an empty result.
type Fetcher struct {
	client *Client
	store  *cache.Cache
	log    *logrus.Logger

	Owner   string
	Name    string
	Limit   int
	NoCache bool
	Offline bool

	// Per-key memoization so concurrent report sections sharing a query
	// (e.g. merged PRs) trigger at most one fetch per run.
	mu    sync.Mutex
	memo  map[string][]json.RawMessage
	locks map[string]*sync.Mutex
}

// NewFetcher builds a fetcher. store may be nil to disable caching.
func NewFetcher(client *Client, store *cache.Cache, owner, name string, log *logrus.Logger) *Fetcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Fetcher{
		client: client,
		store:  store,
		log:    log,
		Owner:  owner,
		Name:   name,
		Limit:  DefaultPRLimit,
		memo:   make(map[string][]json.RawMessage),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Repo returns the owner/name slug this fetcher is bound to.
func (f *Fetcher) Repo() string {
	return f.Owner + "/" + f.Name
}

// cached runs fetch through the cache under key. The cached value is the
// raw node list so a TTL bump or schema change never corrupts derived data.
func (f *Fetcher) cached(ctx context.Context, key string, fetch func(context.Context) ([]json.RawMessage, error)) ([]json.RawMessage, error) {
	f.mu.Lock()
	keyLock, ok := f.locks[key]
	if !ok {
		keyLock = &sync.Mutex{}
		f.locks[key] = keyLock
	}
	f.mu.Unlock()

	keyLock.Lock()
	defer keyLock.Unlock()

	f.mu.Lock()
	nodes, hit := f.memo[key]
	f.mu.Unlock()
	if hit {
		return nodes, nil
	}

	nodes, err := f.lookup(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.memo[key] = nodes
	f.mu.Unlock()
	return nodes, nil
}

func (f *Fetcher) lookup(ctx context.Context, key string, fetch func(context.Context) ([]json.RawMessage, error)) ([]json.RawMessage, error) {
	if f.store != nil && !f.NoCache {
		var nodes []json.RawMessage
		hit, err := false, error(nil)
		if f.Offline {
			hit, err = f.store.GetStale(f.Repo(), key, &nodes)
		} else {
			hit, err = f.store.Get(f.Repo(), key, &nodes)
		}
		if err != nil {
			f.log.WithError(err).WithField("key", key).Warn("cache read failed")
		} else if hit {
			f.log.WithFields(logrus.Fields{"key": key, "nodes": len(nodes)}).Debug("cache hit")
			return nodes, nil
		}
	}

	if f.Offline {
		f.log.WithField("key", key).Debug("offline, no cached data")
		return nil, nil
	}

	nodes, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if f.store != nil && !f.NoCache {
		if err := f.store.Put(f.Repo(), key, nodes); err != nil {
			f.log.WithError(err).WithField("key", key).Warn("cache write failed")
		}
	}
	return nodes, nil
}

func decodePRs(nodes []json.RawMessage) ([]models.RawPullRequest, error) {
	prs := make([]models.RawPullRequest, 0, len(nodes))
	for i, n := range nodes {
		var pr models.RawPullRequest
		if err := json.Unmarshal(n, &pr); err != nil {
			return nil, fmt.Errorf("decoding pull request node %d: %w", i, err)
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

var prQueries = map[string]struct {
	key   string
	query string
}{
	models.StateMerged: {"merged_prs", mergedPRsQuery},
	models.StateClosed: {"closed_prs", closedPRsQuery},
	models.StateOpen:   {"open_prs", openPRsQuery},
}

var prReviewQueries = map[string]struct {
	key   string
	query string
}{
	models.StateMerged: {"merged_prs_reviews", mergedPRsWithReviewsQuery},
	models.StateOpen:   {"open_prs_reviews", openPRsWithReviewsQuery},
}

// PullRequests fetches up to Limit PRs in the given state with summary
// fields only (review totalCount, no review nodes).
func (f *Fetcher) PullRequests(ctx context.Context, state string) ([]models.RawPullRequest, error) {
	q, ok := prQueries[state]
	if !ok {
		return nil, fmt.Errorf("no query for state %q", state)
	}
	return f.fetchPRs(ctx, q.key, q.query)
}

// PullRequestsWithReviews fetches PRs including individual review events.
// Only merged and open states carry review detail.
func (f *Fetcher) PullRequestsWithReviews(ctx context.Context, state string) ([]models.RawPullRequest, error) {
	q, ok := prReviewQueries[state]
	if !ok {
		return nil, fmt.Errorf("no review query for state %q", state)
	}
	return f.fetchPRs(ctx, q.key, q.query)
}

func (f *Fetcher) fetchPRs(ctx context.Context, key, query string) ([]models.RawPullRequest, error) {
	nodes, err := f.cached(ctx, key, func(ctx context.Context) ([]json.RawMessage, error) {
		vars := map[string]any{"owner": f.Owner, "name": f.Name}
		return f.client.QueryNodes(ctx, query, vars, []string{"repository", "pullRequests"}, f.Limit)
	})
	if err != nil {
		return nil, err
	}
	return decodePRs(nodes)
}

// Overview fetches repository metadata and headline counts.
func (f *Fetcher) Overview(ctx context.Context) (*models.RawOverview, error) {
	nodes, err := f.cached(ctx, "overview", func(ctx context.Context) ([]json.RawMessage, error) {
		var data struct {
			Repository json.RawMessage `json:"repository"`
		}
		vars := map[string]any{"owner": f.Owner, "name": f.Name}
		if err := f.client.Query(ctx, repoOverviewQuery, vars, &data); err != nil {
			return nil, err
		}
		if len(data.Repository) == 0 || string(data.Repository) == "null" {
			return nil, fmt.Errorf("repository %s not found", f.Repo())
		}
		return []json.RawMessage{data.Repository}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	var ov models.RawOverview
	if err := json.Unmarshal(nodes[0], &ov); err != nil {
		return nil, fmt.Errorf("decoding overview: %w", err)
	}
	return &ov, nil
}

// Commits fetches default-branch commits from the last days days. The
// history connection is capped at one page of 100; for activity trends
// that window is representative enough.
func (f *Fetcher) Commits(ctx context.Context, days int, asOf time.Time) ([]models.RawCommit, error) {
	nodes, err := f.cached(ctx, "commits", func(ctx context.Context) ([]json.RawMessage, error) {
		var data struct {
			Repository struct {
				DefaultBranchRef *struct {
					Target struct {
						History connection `json:"history"`
					} `json:"target"`
				} `json:"defaultBranchRef"`
			} `json:"repository"`
		}
		vars := map[string]any{
			"owner": f.Owner,
			"name":  f.Name,
			"since": asOf.AddDate(0, 0, -days).UTC().Format(time.RFC3339),
		}
		if err := f.client.Query(ctx, commitHistoryQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Repository.DefaultBranchRef == nil {
			return nil, nil
		}
		var out []json.RawMessage
		for _, e := range data.Repository.DefaultBranchRef.Target.History.Edges {
			out = append(out, e.Node)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	commits := make([]models.RawCommit, 0, len(nodes))
	for i, n := range nodes {
		var c models.RawCommit
		if err := json.Unmarshal(n, &c); err != nil {
			return nil, fmt.Errorf("decoding commit node %d: %w", i, err)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// Issues fetches recently updated issues with their earliest comments.
func (f *Fetcher) Issues(ctx context.Context) ([]models.RawIssue, error) {
	limit := f.Limit
	if limit > 50 {
		limit = 50
	}
	nodes, err := f.cached(ctx, "issues", func(ctx context.Context) ([]json.RawMessage, error) {
		vars := map[string]any{"owner": f.Owner, "name": f.Name}
		return f.client.QueryNodes(ctx, issueTimelineQuery, vars, []string{"repository", "issues"}, limit)
	})
	if err != nil {
		return nil, err
	}
	issues := make([]models.RawIssue, 0, len(nodes))
	for i, n := range nodes {
		var is models.RawIssue
		if err := json.Unmarshal(n, &is); err != nil {
			return nil, fmt.Errorf("decoding issue node %d: %w", i, err)
		}
		issues = append(issues, is)
	}
	return issues, nil
}

// UserOpenPRs fetches the user's open PRs against this repository via
// the search API.
func (f *Fetcher) UserOpenPRs(ctx context.Context, user string) ([]models.RawPullRequest, error) {
	key := "user_open_prs_" + user
	nodes, err := f.cached(ctx, key, func(ctx context.Context) ([]json.RawMessage, error) {
		var data struct {
			Search struct {
				Nodes []json.RawMessage `json:"nodes"`
			} `json:"search"`
		}
		vars := map[string]any{
			"searchQuery": fmt.Sprintf("repo:%s is:pr is:open author:%s", f.Repo(), user),
		}
		if err := f.client.Query(ctx, userOpenPRsQuery, vars, &data); err != nil {
			return nil, err
		}
		// Search can return non-PR nodes as empty objects; drop them.
		var out []json.RawMessage
		for _, n := range data.Search.Nodes {
			if len(n) > 2 {
				out = append(out, n)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return decodePRs(nodes)
}
