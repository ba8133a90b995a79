package usecase

import (
	"time"

	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/service/maturity"
	"github.com/govcon-lab/bidgate/pkg/service/scoring"
	"github.com/govcon-lab/bidgate/pkg/service/slack"
)

type UseCases struct {
	repo          interfaces.Repository
	scoringConfig *config.ScoringConfig
	scorer        *scoring.Scorer
	maturity      *maturity.Aggregator
	slackService  slack.Service
	now           func() time.Time
}

type Option func(*UseCases)

// WithScoringConfig injects the scoring policy. Defaults to the stock policy.
func WithScoringConfig(cfg *config.ScoringConfig) Option {
	return func(uc *UseCases) {
		uc.scoringConfig = cfg
	}
}

// WithSlackService enables best-effort Slack notifications
func WithSlackService(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slackService = svc
	}
}

// WithClock overrides the wall clock, used by tests to control snapshot
// freshness
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.scoringConfig == nil {
		uc.scoringConfig = config.DefaultScoringConfig()
	}
	uc.scorer = scoring.New(uc.scoringConfig)
	uc.maturity = maturity.New(repo, uc.scoringConfig, maturity.WithClock(uc.now))

	return uc
}
