package joins

import (
	"context"
	"errors"
	"time"

	"github.com/jaberDevHub/help-hive-server-side/internal/domain/events"
)

// ErrAlreadyJoined is the conflict signal for a second join of the same event
// by the same participant. The storage layer derives it from a unique index
// violation, so it holds under concurrent requests too.
var ErrAlreadyJoined = errors.New("already joined this event")

// JoinRecord is a participant's commitment to an event. Event is a full copy
// of the event document taken at join time; edits or deletion of the original
// event never propagate back into it.
type JoinRecord struct {
	ID               string
	EventID          string
	ParticipantEmail string
	JoinedAt         time.Time
	Event            events.Event
}

type CreateParams struct {
	EventID          string
	ParticipantEmail string
	Event            events.Event
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (string, error)
	ListByParticipant(ctx context.Context, email string) ([]JoinRecord, error)
}
