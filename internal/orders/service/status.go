package service

import (
	"sort"

	"seedstore_backend/internal/orders/repository"
)

var statusDisplay = map[string]string{
	repository.StatusPending:    "Ожидает обработки",
	repository.StatusProcessing: "В обработке",
	repository.StatusShipped:    "Отправлен",
	repository.StatusDelivered:  "Доставлен",
	repository.StatusCancelled:  "Отменен",
}

// StatusDisplay returns the customer-facing Russian label for status, or
// status itself when it is unknown.
func StatusDisplay(status string) string {
	if label, ok := statusDisplay[status]; ok {
		return label
	}
	return status
}

func knownStatuses() []string {
	out := make([]string, 0, len(statusDisplay))
	for status := range statusDisplay {
		out = append(out, status)
	}
	sort.Strings(out)
	return out
}
