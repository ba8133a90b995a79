package config

import (
	"github.com/urfave/cli/v3"

	"github.com/govcon-lab/bidgate/pkg/service/slack"
	"github.com/govcon-lab/bidgate/pkg/utils/logging"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	oauthToken string
	channelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack Bot OAuth token for escalation notifications",
			Sources:     cli.EnvVars("BIDGATE_SLACK_OAUTH_TOKEN"),
			Destination: &s.oauthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID for escalation notifications",
			Sources:     cli.EnvVars("BIDGATE_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured reports whether both the token and the channel are set
func (s *Slack) IsConfigured() bool {
	return s.oauthToken != "" && s.channelID != ""
}

// Configure returns the Slack notification service, or nil when Slack is not
// configured. Notifications are optional; the engine runs without them.
func (s *Slack) Configure() (slack.Service, error) {
	if !s.IsConfigured() {
		logging.Default().Info("Slack not configured, escalation notifications disabled")
		return nil, nil
	}

	svc, err := slack.New(s.oauthToken, s.channelID)
	if err != nil {
		return nil, err
	}
	logging.Default().Info("Slack notifications enabled", "channel_id", s.channelID)
	return svc, nil
}
