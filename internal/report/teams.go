package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TeamsSink posts the summary to a Microsoft Teams incoming webhook as a
// MessageCard.
type TeamsSink struct {
	WebhookURL string
	Client     *http.Client
}

func (t *TeamsSink) Name() string { return "teams" }

func (t *TeamsSink) Send(ctx context.Context, s Summary) error {
	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	card := map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": "0076D7",
		"summary":    "Javadoc Generation Report - " + s.Date,
		"sections": []map[string]any{{
			"activityTitle":    "Javadoc Generation Report - " + s.Date,
			"activitySubtitle": "javadoc-ai",
			"markdown":         false,
			"text":             RenderText(s),
		}},
	}

	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode teams card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post teams webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("teams webhook returned %s", resp.Status)
	}
	return nil
}
