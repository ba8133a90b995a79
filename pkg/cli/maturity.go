package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/govcon-lab/bidgate/pkg/cli/config"
	"github.com/govcon-lab/bidgate/pkg/domain/model"
	"github.com/govcon-lab/bidgate/pkg/usecase"
	"github.com/govcon-lab/bidgate/pkg/utils/logging"
)

func cmdMaturity() *cli.Command {
	var repoCfg config.Repository
	var scoringCfg config.Scoring

	flags := repoCfg.Flags()
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:  "maturity",
		Usage: "Compute and print the governance maturity index",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			scoringConfig, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scoring policy")
			}

			uc := usecase.New(repo, usecase.WithScoringConfig(scoringConfig))

			result, err := uc.ComputeMaturityIndex(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to compute maturity index")
			}

			printMaturityReport(result.Overall, result.Pillars, result.Indicators)
			return nil
		},
	}
}

func printMaturityReport(overall int, pillars []model.MaturityPillar, indicators []string) {
	bold := color.New(color.Bold)
	bold.Printf("Governance Maturity Index: %s\n\n", scoreColor(overall*20/100).Sprintf("%d/100", overall))

	bold.Println("Pillars")
	for _, p := range pillars {
		fmt.Printf("  %-28s %s  (%.0f%%)\n", p.Name, scoreColor(p.Score).Sprintf("%2d/20", p.Score), p.Rate*100)
	}

	if len(indicators) > 0 {
		fmt.Println()
		bold.Println("Findings")
		for _, indicator := range indicators {
			color.Yellow("  - %s", indicator)
		}
	}
}

// scoreColor maps a 0-20 pillar score onto a severity color
func scoreColor(score int) *color.Color {
	switch {
	case score >= 16:
		return color.New(color.FgGreen)
	case score >= 10:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
