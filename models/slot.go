package models

import "time"

// Slot statuses. A slot starts AVAILABLE, moves to REQUESTED when a patient
// claims it and to CONFIRMED when the provider accepts. REQUESTED and
// CONFIRMED may both fall back to AVAILABLE on cancellation.
const (
	SlotAvailable = "AVAILABLE"
	SlotRequested = "REQUESTED"
	SlotConfirmed = "CONFIRMED"
)

// Slot is one concrete, dated, bookable session derived from a provider's
// weekly availability.
type Slot struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	ConsumerID string    `bson:"consumerId,omitempty" json:"consumerId,omitempty"` // empty while unclaimed
	Date       string    `bson:"date" json:"date"` // "2006-01-02"
	Time       string    `bson:"time" json:"time"` // "HH:MM"
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// slotTransitions lists the legal status edges.
var slotTransitions = map[string][]string{
	SlotAvailable: {SlotRequested},
	SlotRequested: {SlotConfirmed, SlotAvailable},
	SlotConfirmed: {SlotAvailable},
}

// CanTransition reports whether a slot may move from one status to another.
// Any edge not listed is illegal, including self-transitions.
func CanTransition(from, to string) bool {
	for _, next := range slotTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SlotWriteFailure records one slot-creation attempt that failed during
// reconciliation. The time stays missing and is retried on the next run.
type SlotWriteFailure struct {
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// ReconcileResult aggregates the outcome of one reconciliation pass for a
// (provider, date) pair. Times holds every slot time known to exist after the
// pass (pre-existing plus newly created); Created only the ones this pass
// inserted. Failed entries are recoverable: rerunning the same pass retries
// exactly those times.
type ReconcileResult struct {
	ProviderID string             `json:"providerId"`
	Date       string             `json:"date"`
	DayOfWeek  int                `json:"dayOfWeek"`
	Times      []string           `json:"times"`
	Created    []string           `json:"created"`
	Failed     []SlotWriteFailure `json:"failed,omitempty"`
}
