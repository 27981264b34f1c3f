package notifications

import "github.com/brandscope/visibility-bot/internal/models"

// Interface defines the contract for notification channels
type Interface interface {
	SendReport(bundle *models.ResultBundle) error
	SendAlert(subject, message string) error
}
