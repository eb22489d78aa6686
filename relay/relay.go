package relay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"tripdesk/rdx"

	"github.com/google/uuid"
)

const channel = "inquiry-events"

// InquiryEvent is the payload forwarded to the configured webhook
// endpoint when an inquiry is created.
type InquiryEvent struct {
	Event       string `json:"event"`
	InquiryID   string `json:"inquiryId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Destination string `json:"destination,omitempty"`
	Message     string `json:"message,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// Emit publishes an inquiry event for the webhook worker. Best effort:
// failures are logged and never surfaced to the caller.
func Emit(event InquiryEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] failed to marshal inquiry event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish inquiry event: %v", err)
	}
}

// Sign returns the base64 HMAC-SHA256 signature of body under secret.
func Sign(secret, body []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write(body)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// StartWebhookWorker subscribes to inquiry events and forwards each
// one to WEBHOOK_URL with a signed POST. One attempt per event, no
// retries, no backoff; the outcome only reaches the log.
func StartWebhookWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	url := os.Getenv("WEBHOOK_URL")
	secret := []byte(os.Getenv("WEBHOOK_SECRET"))
	client := &http.Client{Timeout: 5 * time.Second}

	log.Println("[WebhookWorker] Listening for inquiry events...")

	for msg := range ch {
		if url == "" {
			log.Println("[WebhookWorker] WEBHOOK_URL not set; dropping event")
			continue
		}
		deliver(client, url, secret, []byte(msg.Payload))
	}
}

func deliver(client *http.Client, url string, secret, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("[WebhookWorker] bad request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tripdesk-Signature", Sign(secret, body))
	req.Header.Set("X-Tripdesk-Delivery", uuid.NewString())

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[WebhookWorker] delivery failed: %v", err)
		return
	}
	resp.Body.Close()
	log.Printf("[WebhookWorker] delivered inquiry event, status=%s", resp.Status)
}
