package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"inan-survey-server/utils"
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// NotifyWebhook POSTs an event to the configured integration webhook.
// Delivery is best effort: transient failures are retried with bounded
// backoff and the final error is only logged, since a webhook outage must
// not block the primary operation.
func NotifyWebhook(event string, payload interface{}) {
	settings, err := LoadSettings()
	if err != nil {
		log.Printf("⚠️ Webhook skipped, settings unavailable: %v", err)
		return
	}
	url := settings.Integrations.WebhookURL
	if url == "" {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"data":      payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("⚠️ Webhook payload encoding failed: %v", err)
		return
	}

	go func() {
		err := utils.RetryOperation(func() error {
			resp, postErr := webhookClient.Post(url, "application/json", bytes.NewReader(body))
			if postErr != nil {
				return postErr
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 500 {
				return fmt.Errorf("webhook returned %d: service unavailable", resp.StatusCode)
			}
			return nil
		})
		if err != nil {
			log.Printf("⚠️ Webhook delivery failed for %s: %v", event, err)
		}
	}()
}
