// Package notifier posts comparison summaries to a Slack webhook so
// review teams see document drift without opening the reports.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/posidlab/pdfcompare/pkg/engine"
)

// SlackClient handles the transmission of summaries to a configured
// Slack webhook.
type SlackClient struct {
	WebhookURL string
	Channel    string // Optional: override default channel

	// HTTPClient is swappable for tests.
	HTTPClient *http.Client
}

func NewSlackClient(webhookURL, channel string) *SlackClient {
	return &SlackClient{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendComparisonReport dispatches a structured Block Kit message
// summarizing one comparison run. A client with no webhook is a no-op.
func (s *SlackClient) SendComparisonReport(res *engine.Result) error {
	if s.WebhookURL == "" {
		return nil
	}
	return s.send(s.constructPayload(res))
}

// constructPayload builds the Slack Block Kit structure.
// Ref: https://api.slack.com/block-kit/building
func (s *SlackClient) constructPayload(res *engine.Result) map[string]interface{} {
	counts := res.BlockCounts()
	totalDiffs := res.EditCount() + counts.Total

	// Status indicator
	statusIcon := "🟢" // documents match
	if res.OverallSimilarity < 60 || res.Partial {
		statusIcon = "🔴" // heavy drift or failed pages
	} else if totalDiffs > 0 {
		statusIcon = "🟡" // differences to review
	}

	blocks := []map[string]interface{}{
		{
			"type": "header",
			"text": map[string]interface{}{
				"type": "plain_text",
				"text": fmt.Sprintf("%s Document Comparison Report", statusIcon),
			},
		},
		{
			"type": "context",
			"elements": []map[string]interface{}{
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Date:* %s | *Left:* %s | *Right:* %s",
						time.Now().Format("2006-01-02"), res.LeftPath, res.RightPath),
				},
			},
		},
		{
			"type": "divider",
		},
		{
			"type": "section",
			"fields": []map[string]interface{}{
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Similarity:*\n%.1f%%", res.OverallSimilarity),
				},
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Pages Compared:*\n%d", res.Pages),
				},
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Word Edits:*\n%d", res.EditCount()),
				},
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Blocks:*\n%d modified / %d deleted / %d added",
						counts.Modified, counts.Deleted, counts.Added),
				},
			},
		},
	}

	if res.Partial {
		blocks = append(blocks, map[string]interface{}{
			"type": "section",
			"text": map[string]interface{}{
				"type": "mrkdwn",
				"text": fmt.Sprintf("⚠️ *Partial Result*\nPages %v could not be extracted. Review the documents manually before sign-off.", res.FailedPages),
			},
		})
	}

	payload := map[string]interface{}{
		"blocks": blocks,
	}
	if s.Channel != "" {
		payload["channel"] = s.Channel
	}
	return payload
}

func (s *SlackClient) send(payload map[string]interface{}) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal slack payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.WebhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("received non-200 status from slack: %d", resp.StatusCode)
	}
	return nil
}
