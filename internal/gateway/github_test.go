package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		sort:          "pushed",
		logger:        zap.NewNop(),
	}

	return gateway, server
}

func strPtr(s string) *string { return &s }

func TestGitHubGateway_FetchProfile(t *testing.T) {
	testCases := []struct {
		name            string
		handlerFunc     func(w http.ResponseWriter, r *http.Request)
		expectedProfile *domain.Profile
		expectError     bool
		expectedStatus  string
	}{
		{
			name: "happy path - successfully fetches profile",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octo", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"login":"octo","name":"Octo Cat","avatar_url":"https://a/octo.png","bio":"hi","html_url":"https://github.com/octo","public_repos":7,"followers":3}`)
			},
			expectedProfile: &domain.Profile{
				Login:       "octo",
				Name:        "Octo Cat",
				AvatarURL:   "https://a/octo.png",
				Bio:         "hi",
				HTMLURL:     "https://github.com/octo",
				PublicRepos: 7,
				Followers:   3,
			},
		},
		{
			name: "error case - unknown user",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedStatus: "404",
		},
		{
			name: "error case - rate limited",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Limit", "60")
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", "1")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			},
			expectError:    true,
			expectedStatus: "403",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			profile, err := gateway.FetchProfile(context.Background(), "octo")
			if tc.expectError {
				require.Error(t, err)
				var fetchErr *FetchError
				require.True(t, errors.As(err, &fetchErr))
				assert.False(t, fetchErr.Network)
				assert.Equal(t, tc.expectedStatus, fetchErr.Status)
				assert.Contains(t, err.Error(), "failed to fetch profile with REST API")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedProfile, profile)
			}
		})
	}
}

func TestGitHubGateway_FetchProfile_NetworkError(t *testing.T) {
	gateway, server := setupTestGateway(t, http.NotFoundHandler())
	server.Close()

	_, err := gateway.FetchProfile(context.Background(), "octo")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.Network)
	assert.Equal(t, StatusFetchError, fetchErr.Status)
	assert.Equal(t, "FETCH_ERROR - check github.api_url in portfolio.yaml", fetchErr.Guidance("portfolio.yaml"))
}

func TestGitHubGateway_FetchRepositories(t *testing.T) {
	var serverURL string
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		assert.Equal(t, "pushed", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id":2,"name":"beta","html_url":"u2"},{"id":3,"name":"gamma","html_url":"u3","stargazers_count":1}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/octo/repos?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[
			{"id":1,"name":"alpha","homepage":"https://alpha.dev","description":"first","html_url":"u1","stargazers_count":5,"language":"Go"},
			{"id":2,"name":"beta","homepage":null,"description":null,"html_url":"u2"}
		]`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()
	serverURL = server.URL

	repos, err := gateway.FetchRepositories(context.Background(), "octo")
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRepository{
		{ID: 1, Name: "alpha", Homepage: strPtr("https://alpha.dev"), Description: strPtr("first"), HTMLURL: "u1", Stars: 5, Language: strPtr("Go")},
		{ID: 2, Name: "beta", HTMLURL: "u2"},
		{ID: 3, Name: "gamma", HTMLURL: "u3", Stars: 1},
	}, repos)
}

func TestGitHubGateway_FetchRepositories_Error(t *testing.T) {
	gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "Internal Server Error"}`)
	}))
	defer server.Close()

	_, err := gateway.FetchRepositories(context.Background(), "octo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list repositories with REST API")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "500: Internal Server Error - check github.username in portfolio.yaml", fetchErr.Guidance("portfolio.yaml"))
}

func TestGitHubGateway_FetchPinned(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       []string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - repositories only",
			responseBody: `{"data":{"user":{"pinnedItems":{"nodes":[{"__typename":"Repository","name":"repo-a"},{"__typename":"Gist"},{"__typename":"Repository","name":"repo-b"}]}}}}`,
			expected:     []string{"repo-a", "repo-b"},
		},
		{
			name:         "no pinned items",
			responseBody: `{"data":{"user":{"pinnedItems":{"nodes":[]}}}}`,
			expected:     []string{},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for pinned items",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "pinnedItems")
				assert.Contains(t, string(body), `"login":"octo"`)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			names, err := gateway.FetchPinned(context.Background(), "octo")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, names)
			}
		})
	}
}

func TestNewGitHubGateway_BaseURL(t *testing.T) {
	gateway, err := NewGitHubGateway(Options{BaseURL: "https://ghe.example.com/api/v3"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", gateway.restClient.BaseURL.String())

	gateway, err = NewGitHubGateway(Options{Token: "t"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, gateway.restClient.BaseURL.String())
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name             string
		err              error
		expectedStatus   string
		expectedNetwork  bool
		expectedGuidance string
	}{
		{
			name:             "error response with status",
			err:              &github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusNotFound}, Message: "Not Found"},
			expectedStatus:   "404",
			expectedGuidance: "404: Not Found - check github.username in portfolio.yaml",
		},
		{
			name:             "error response without a response",
			err:              &github.ErrorResponse{Message: "lost"},
			expectedStatus:   StatusFetchError,
			expectedNetwork:  true,
			expectedGuidance: "FETCH_ERROR - check github.api_url in portfolio.yaml",
		},
		{
			name:             "rate limit without a response",
			err:              &github.RateLimitError{Message: "slow down"},
			expectedStatus:   StatusFetchError,
			expectedNetwork:  true,
			expectedGuidance: "FETCH_ERROR - check github.api_url in portfolio.yaml",
		},
		{
			name:             "plain transport error",
			err:              errors.New("connection refused"),
			expectedStatus:   StatusFetchError,
			expectedNetwork:  true,
			expectedGuidance: "FETCH_ERROR - check github.api_url in portfolio.yaml",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.Equal(t, tc.expectedStatus, got.Status)
			assert.Equal(t, tc.expectedNetwork, got.Network)
			assert.Equal(t, tc.expectedGuidance, got.Guidance("portfolio.yaml"))
			assert.ErrorIs(t, got, tc.err)
		})
	}
}
