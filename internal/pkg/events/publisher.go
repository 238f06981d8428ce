// Package events publishes committed attendance changes to other systems.
package events

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

// Publish implements attendance.EventPublisher.
func (NoopPublisher) Publish(_ context.Context, event attendance.Event) error {
	slog.Debug("Event dropped, no broker configured", "type", event.Type, "employee_id", event.EmployeeID)
	return nil
}
