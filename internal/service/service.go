package service

import (
	"time"

	"go-floor-inventory/internal/ws"
)

// Clock supplies the current time for requested_at, checked_at, created_at and deleted_at
type Clock func() time.Time

// Notifier publishes ledger changes to connected clients
type Notifier interface {
	Notify(event ws.Event)
}

// timePrecision matches PostgreSQL timestamp resolution so stored values compare equal to what was written
const timePrecision = time.Microsecond
