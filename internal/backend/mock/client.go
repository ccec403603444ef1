package mock

import (
	"context"

	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/fetch"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

// Client satisfies backend.Client for testing.
type Client struct {
	AnalyzeProfileFunc func(ctx context.Context, username string) (*models.ProfileResult, error)
	FullAnalysisFunc   func(ctx context.Context, profile *models.ProfileResult) (*models.AIAnalysis, error)

	ProfileCalls int
	AICalls      int
}

func (m *Client) AnalyzeProfile(ctx context.Context, username string) (*models.ProfileResult, error) {
	m.ProfileCalls++
	if m.AnalyzeProfileFunc != nil {
		return m.AnalyzeProfileFunc(ctx, username)
	}
	return &models.ProfileResult{}, nil
}

func (m *Client) FullAnalysis(ctx context.Context, profile *models.ProfileResult) (*models.AIAnalysis, error) {
	m.AICalls++
	if m.FullAnalysisFunc != nil {
		return m.FullAnalysisFunc(ctx, profile)
	}
	return &models.AIAnalysis{}, nil
}

// NewClient returns a Client with sensible default responses.
func NewClient() *Client {
	return &Client{
		AnalyzeProfileFunc: func(_ context.Context, username string) (*models.ProfileResult, error) {
			p := &models.ProfileResult{
				Profile: models.Profile{Login: username, Name: "Mock User", PublicRepos: 3},
				Metrics: models.Metrics{TotalRepos: 3, FilesScanned: 120, TotalBytes: 1536, TotalStars: 42, TotalForks: 7},
				Charts: models.Charts{
					Languages:  []models.ChartPoint{{Name: "Go", Value: 60}, {Name: "Rust", Value: 40}},
					TopStarred: []models.ChartPoint{{Name: "gitpulse", Value: 30}},
					Activity:   []models.TimePoint{{Date: "2026-09", Count: 12}},
				},
				Skills: []string{"Go", "Rust"},
			}
			p.Normalize()
			return p, nil
		},
		FullAnalysisFunc: func(_ context.Context, _ *models.ProfileResult) (*models.AIAnalysis, error) {
			return &models.AIAnalysis{
				TextAnalysis: &models.AIInsights{
					Summary:   "Mock summary for testing",
					Strengths: []string{"Consistent commits"},
				},
				NumericAnalysis: &models.NumericInsights{
					Skills:         []models.SkillScore{{Name: "Go", Score: 80}, {Name: "Testing", Score: 35}},
					ReadinessScore: 70,
				},
				Logs: []any{"Scoring skills: internal detail"},
			}, nil
		},
	}
}

// NewFailingClient returns a Client whose profile call always returns err.
func NewFailingClient(err error) *Client {
	return &Client{
		AnalyzeProfileFunc: func(_ context.Context, _ string) (*models.ProfileResult, error) {
			return nil, err
		},
	}
}

// NewTimeoutClient returns a Client whose profile call blocks until the
// context is cancelled and then reports a timeout.
func NewTimeoutClient() *Client {
	return &Client{
		AnalyzeProfileFunc: func(ctx context.Context, _ string) (*models.ProfileResult, error) {
			<-ctx.Done()
			return nil, fetch.ErrTimeout
		},
	}
}

// Compile-time check that Client implements backend.Client.
var _ backend.Client = (*Client)(nil)
