package order

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// HistoryEntry is one recorded status change. Entries are appended by the
// aggregate and written by the repository together with the order row.
type HistoryEntry struct {
	OrderID    kernel.UUID
	From       Status
	To         Status
	ActorID    kernel.UUID
	ShipmentID *kernel.UUID
	Note       string
	At         time.Time
}
