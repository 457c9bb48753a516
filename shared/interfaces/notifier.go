package interfaces

import (
	"context"

	"community-server/shared/models"
)

// Notifier delivers outgoing email.
type Notifier interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}
