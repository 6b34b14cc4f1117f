package wire

// Priority governs both outbound queue ordering and fanout width. Lower
// numeric values sort first, so PriorityCritical dominates.
type Priority uint8

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityNormal
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// PriorityFor maps an application-level broadcast category to a Priority,
// so callers don't hard-code priority decisions at every call site.
// Unrecognized categories map to PriorityNormal.
func PriorityFor(category string) Priority {
	switch category {
	case "new_block":
		return PriorityCritical
	case "settlement":
		return PriorityHigh
	case "new_entry":
		return PriorityNormal
	case "peer_announce":
		return PriorityLow
	}
	return PriorityNormal
}
