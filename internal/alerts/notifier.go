package alerts

import (
	"context"
	"log/slog"

	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/models"
)

// Alert tells one subscriber about new deals at a store
type Alert struct {
	Email     string
	StoreName string
	Summary   string
	Codes     []models.DiscountCode
}

// Notifier delivers alerts to subscribers
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogNotifier writes alerts to the log instead of sending them
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier that logs through the shared logger
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.With("notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, alert Alert) error {
	codes := make([]string, 0, len(alert.Codes))
	for _, c := range alert.Codes {
		codes = append(codes, c.Code)
	}
	n.log.InfoContext(ctx, "store alert",
		"email", alert.Email,
		"store", alert.StoreName,
		"new_codes", codes,
	)
	return nil
}
