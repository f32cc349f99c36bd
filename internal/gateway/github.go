// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com/"

// Fetcher defines the behavior of a gateway for fetching portfolio data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, user string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, user string) ([]domain.RawRepository, error)
	// FetchPinned returns the names of the repositories pinned on the user's profile.
	FetchPinned(ctx context.Context, user string) ([]string, error)
}

// Options configures a GitHubGateway.
type Options struct {
	// Token is optional. Public profiles can be read anonymously, but pinned
	// items need an authenticated GraphQL client.
	Token   string
	BaseURL string
	// Sort is passed to the repository listing (created, updated, pushed, full_name).
	Sort string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	sort          string
	logger        *zap.Logger
}

// pinnedItemsQuery lists the repositories a user pinned on their profile.
type pinnedItemsQuery struct {
	User struct {
		PinnedItems struct {
			Nodes []struct {
				Typename   string `graphql:"__typename"`
				Repository struct {
					Name string
				} `graphql:"... on Repository"`
			}
		} `graphql:"pinnedItems(first: 6, types: REPOSITORY)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *zap.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport, Timeout: 30 * time.Second}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.BaseURL != "" && opts.BaseURL != DefaultBaseURL {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse GitHub API URL %q: %w", opts.BaseURL, err)
		}
		restClient.BaseURL = baseURL
		graphqlClient = githubv4.NewEnterpriseClient(baseURL.String()+"graphql", httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		sort:          opts.Sort,
		logger:        logger,
	}, nil
}

// FetchProfile fetches the public user record.
func (g *GitHubGateway) FetchProfile(ctx context.Context, user string) (*domain.Profile, error) {
	g.logger.Debug("fetching profile", zap.String("user", user))
	u, _, err := g.restClient.Users.Get(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile with REST API: %w", classify(err))
	}
	return &domain.Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		Blog:        u.GetBlog(),
		Location:    u.GetLocation(),
		HTMLURL:     u.GetHTMLURL(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
	}, nil
}

// FetchRepositories lists every public repository owned by user, in the order
// GitHub returns them for the configured sort.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.RawRepository, error) {
	g.logger.Debug("fetching repositories", zap.String("user", user), zap.String("sort", g.sort))
	opts := &github.RepositoryListByUserOptions{
		Sort:        g.sort,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var repos []domain.RawRepository
	// A repository pushed while paging moves to the front and can be listed twice.
	seen := make(map[int64]bool)
	for {
		page, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", classify(err))
		}
		for _, r := range page {
			if seen[r.GetID()] {
				g.logger.Debug("skipping repository listed twice", zap.String("name", r.GetName()))
				continue
			}
			seen[r.GetID()] = true
			repos = append(repos, domain.RawRepository{
				ID:          r.GetID(),
				Homepage:    r.Homepage,
				Description: r.Description,
				Name:        r.GetName(),
				HTMLURL:     r.GetHTMLURL(),
				Stars:       r.GetStargazersCount(),
				Language:    r.Language,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("fetching next page of repositories", zap.Int("page", resp.NextPage))
	}
	g.logger.Debug("completed fetching repositories", zap.Int("count", len(repos)))
	return repos, nil
}

func (g *GitHubGateway) FetchPinned(ctx context.Context, user string) ([]string, error) {
	g.logger.Debug("fetching pinned repositories", zap.String("user", user))
	var q pinnedItemsQuery
	variables := map[string]interface{}{"login": githubv4.String(user)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for pinned items: %w", err)
	}
	names := make([]string, 0, len(q.User.PinnedItems.Nodes))
	for _, node := range q.User.PinnedItems.Nodes {
		if node.Typename != "Repository" || node.Repository.Name == "" {
			continue
		}
		names = append(names, node.Repository.Name)
	}
	return names, nil
}
