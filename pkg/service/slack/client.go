package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/govcon-lab/bidgate/pkg/domain/model"
)

// client implements Service interface
type client struct {
	api       *slack.Client
	channelID string
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new Slack notifier with the provided bot token. All
// notifications go to the given channel.
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		api:       slack.New(token),
		channelID: channelID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) NotifyEscalation(ctx context.Context, sol *model.Solicitation, assessment *model.ClauseRiskAssessment) error {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, ":rotating_light: Executive escalation required", false, false))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Solicitation:*\n%s", sol.Number), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Title:*\n%s", sol.Title), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Overall risk:*\n%d%% (%s)", sol.OverallScore, sol.OverallLevel), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Clause risk:*\n%d%% (%s)", assessment.Percent, assessment.Level), false, false),
	}
	section := slack.NewSectionBlock(nil, fields, nil)

	text := fmt.Sprintf("Executive escalation required for %s (%s)", sol.Number, assessment.Level)
	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(header, section),
		slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post escalation notification",
			goerr.V("solicitationID", sol.ID))
	}

	return nil
}

func (c *client) NotifyApprovedToBid(ctx context.Context, sol *model.Solicitation) error {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, ":white_check_mark: Approved to bid", false, false))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Solicitation:*\n%s", sol.Number), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Title:*\n%s", sol.Title), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Agency:*\n%s", sol.Agency), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Overall risk:*\n%d%% (%s)", sol.OverallScore, sol.OverallLevel), false, false),
	}
	section := slack.NewSectionBlock(nil, fields, nil)

	text := fmt.Sprintf("Solicitation %s approved to bid", sol.Number)
	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(header, section),
		slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post approval notification",
			goerr.V("solicitationID", sol.ID))
	}

	return nil
}
