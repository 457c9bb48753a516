package messaging

import (
	"time"

	"community-server/shared/models"
)

// MailTask is the JSON body published to the mail queue.
type MailTask struct {
	ID        string              `json:"id"`
	Kind      string              `json:"kind"`
	Message   models.EmailMessage `json:"message"`
	CreatedAt time.Time           `json:"createdAt"`
}
