package realtime

import (
	"time"

	"github.com/spec-kit/queue-monitor/internal/domain"
)

// Kind enumerates mutation event kinds delivered by the stream.
type Kind string

const (
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// TicketRecord is the wire shape of the ticket carried on a mutation event.
// Timestamps arrive as strings and may be malformed; decoding must never
// fail the event path.
type TicketRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	StageNumber int    `json:"stage_number"`
	CreatedAt   string `json:"created_at"`
}

// Event is one mutation delivered by the stream. IngestID is stamped on
// receipt for log correlation; it is not part of the wire format.
type Event struct {
	Kind     Kind         `json:"kind"`
	Record   TicketRecord `json:"record"`
	IngestID string       `json:"-"`
}

// CreatedAtTime parses the record's creation timestamp, degrading to the
// zero time on malformed input.
func (r TicketRecord) CreatedAtTime() time.Time {
	return domain.ParseEventTime(r.CreatedAt)
}
