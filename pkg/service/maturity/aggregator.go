package maturity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/govcon-lab/bidgate/pkg/domain/interfaces"
	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/domain/model/config"
	"github.com/govcon-lab/bidgate/pkg/domain/types"
)

// Aggregator computes the organization-wide governance maturity index from
// the record store. All queries are read-only.
type Aggregator struct {
	repo interfaces.Repository
	cfg  *config.ScoringConfig
	now  func() time.Time
}

type Option func(*Aggregator)

// WithClock overrides the wall clock used for snapshot freshness
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

func New(repo interfaces.Repository, cfg *config.ScoringConfig, opts ...Option) *Aggregator {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	a := &Aggregator{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// rate divides num by denom, defaulting to 1.0 when the denominator is zero
func rate(num, denom int) float64 {
	if denom == 0 {
		return 1.0
	}
	return float64(num) / float64(denom)
}

func pillarScore(r float64) int {
	return int(math.Round(r * 20))
}

type pillarResult struct {
	pillar     model.MaturityPillar
	indicators []string
}

// ComputeMaturityIndex evaluates the seven maturity pillars. Pillar queries
// run concurrently; the result order is fixed regardless of completion order.
func (a *Aggregator) ComputeMaturityIndex(ctx context.Context) (*model.MaturityResult, error) {
	sols, err := a.repo.Solicitation().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list solicitations")
	}

	pillarFns := []func(ctx context.Context, sols []*model.Solicitation) (pillarResult, error){
		a.intakePillar,
		a.extractionPillar,
		a.assessmentPillar,
		a.approvalPillar,
		a.snapshotPillar,
		a.auditPillar,
		a.finalizationPillar,
	}

	results := make([]pillarResult, len(pillarFns))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, fn := range pillarFns {
		eg.Go(func() error {
			r, err := fn(egCtx, sols)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &model.MaturityResult{
		ComputedAt: a.now().UTC(),
	}
	sum := 0
	for _, r := range results {
		result.Pillars = append(result.Pillars, r.pillar)
		result.Indicators = append(result.Indicators, r.indicators...)
		sum += r.pillar.Score
	}
	sort.Strings(result.Indicators)
	result.Overall = int(math.Round(float64(sum) * 100 / 140))

	return result, nil
}

// intakePillar: fraction of solicitations that progressed past DRAFT
func (a *Aggregator) intakePillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	advanced := 0
	for _, s := range sols {
		if s.Status != types.SolicitationStatusDraft {
			advanced++
		}
	}

	r := rate(advanced, len(sols))
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "intake", Name: "Intake progression", Rate: r, Score: pillarScore(r)},
	}
	if stuck := len(sols) - advanced; stuck > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d solicitations still in DRAFT", stuck))
	}
	return res, nil
}

// extractionPillar: fraction of non-draft solicitations with clause review
// complete, either via extraction or an explicit no-clauses attestation
func (a *Aggregator) extractionPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	reviewed, total := 0, 0
	for _, s := range sols {
		if s.Status == types.SolicitationStatusDraft {
			continue
		}
		total++
		if s.Status != types.SolicitationStatusExtractionPending || s.NoClausesAttested {
			reviewed++
		}
	}

	r := rate(reviewed, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "extraction", Name: "Clause review completion", Rate: r, Score: pillarScore(r)},
	}
	if pending := total - reviewed; pending > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d solicitations with clause extraction pending", pending))
	}
	return res, nil
}

// assessmentPillar: fraction of attached clause entries with at least one
// risk assessment
func (a *Aggregator) assessmentPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	assessed, total := 0, 0
	for _, s := range sols {
		entries, err := a.repo.ClauseEntry().ListBySolicitation(ctx, s.ID)
		if err != nil {
			return pillarResult{}, goerr.Wrap(err, "failed to list clause entries", goerr.V("solicitationID", s.ID))
		}
		for _, e := range entries {
			total++
			if _, err := a.repo.Assessment().GetCurrent(ctx, e.ID); err == nil {
				assessed++
			}
		}
	}

	r := rate(assessed, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "assessment", Name: "Assessment coverage", Rate: r, Score: pillarScore(r)},
	}
	if missing := total - assessed; missing > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d clause entries without any risk assessment", missing))
	}
	return res, nil
}

// approvalPillar: fraction of required approvals actually decided
func (a *Aggregator) approvalPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	decided, total := 0, 0
	for _, s := range sols {
		approvals, err := a.repo.Approval().ListBySolicitation(ctx, s.ID)
		if err != nil {
			return pillarResult{}, goerr.Wrap(err, "failed to list approvals", goerr.V("solicitationID", s.ID))
		}
		for _, ap := range approvals {
			total++
			if ap.Status != types.ApprovalStatusPending {
				decided++
			}
		}
	}

	r := rate(decided, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "approval", Name: "Approval discipline", Rate: r, Score: pillarScore(r)},
	}
	if pending := total - decided; pending > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d required approvals still pending", pending))
	}
	return res, nil
}

// snapshotPillar: fraction of in-review solicitations with a fresh risk log
func (a *Aggregator) snapshotPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	fresh, total := 0, 0
	now := a.now().UTC()
	for _, s := range sols {
		if s.Status.IsFinalized() || s.Status == types.SolicitationStatusDraft {
			continue
		}
		total++
		latest, err := a.repo.Snapshot().Latest(ctx, s.ID)
		if err != nil {
			continue
		}
		if latest.Age(now) <= a.cfg.FreshnessWindow {
			fresh++
		}
	}

	r := rate(fresh, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "snapshot", Name: "Risk log freshness", Rate: r, Score: pillarScore(r)},
	}
	if stale := total - fresh; stale > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d active solicitations without a fresh risk log snapshot", stale))
	}
	return res, nil
}

// auditPillar: fraction of finalized solicitations with an audit trail
func (a *Aggregator) auditPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	trailed, total := 0, 0
	for _, s := range sols {
		if !s.Status.IsFinalized() {
			continue
		}
		total++
		events, err := a.repo.Audit().ListByEntity(ctx, types.EntityTypeSolicitation, fmt.Sprintf("%d", s.ID))
		if err != nil {
			return pillarResult{}, goerr.Wrap(err, "failed to list audit events", goerr.V("solicitationID", s.ID))
		}
		if len(events) > 0 {
			trailed++
		}
	}

	r := rate(trailed, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "audit", Name: "Audit trail completeness", Rate: r, Score: pillarScore(r)},
	}
	if missing := total - trailed; missing > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d finalized solicitations without any audit trail", missing))
	}
	return res, nil
}

// finalizationPillar: fraction of approved-to-bid solicitations with every
// recorded approval actually approved
func (a *Aggregator) finalizationPillar(ctx context.Context, sols []*model.Solicitation) (pillarResult, error) {
	clean, total := 0, 0
	for _, s := range sols {
		if s.Status != types.SolicitationStatusApprovedToBid {
			continue
		}
		total++
		approvals, err := a.repo.Approval().ListBySolicitation(ctx, s.ID)
		if err != nil {
			return pillarResult{}, goerr.Wrap(err, "failed to list approvals", goerr.V("solicitationID", s.ID))
		}
		allApproved := true
		for _, ap := range approvals {
			if ap.Status != types.ApprovalStatusApproved {
				allApproved = false
			}
		}
		if allApproved {
			clean++
		}
	}

	r := rate(clean, total)
	res := pillarResult{
		pillar: model.MaturityPillar{ID: "finalization", Name: "Finalization hygiene", Rate: r, Score: pillarScore(r)},
	}
	if dirty := total - clean; dirty > 0 {
		res.indicators = append(res.indicators,
			fmt.Sprintf("%d solicitations finalized without every required approval on file", dirty))
	}
	return res, nil
}
