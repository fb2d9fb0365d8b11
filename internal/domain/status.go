package domain

// progression is the linear part of the order lifecycle. CANCELLED sits
// outside it: reachable from any non-terminal state, terminal, and
// rendered with no forward progress.
var progression = [...]OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// NoProgress is returned by ProgressIndex for CANCELLED or unknown statuses.
const NoProgress = -1

func ProgressIndex(s OrderStatus) int {
	for i, step := range progression {
		if step == s {
			return i
		}
	}
	return NoProgress
}

type StatusStep struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// ProgressSteps renders the four linear states for the given status.
// Exactly one step is active unless the order is cancelled, in which
// case none are completed or active.
func ProgressSteps(s OrderStatus) []StatusStep {
	current := ProgressIndex(s)
	steps := make([]StatusStep, len(progression))
	for i, step := range progression {
		steps[i] = StatusStep{
			Name:      string(step),
			Completed: current != NoProgress && i <= current,
			Active:    i == current,
		}
	}
	return steps
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanCancel reports whether a cancellation request may be issued for an
// order in this status.
func CanCancel(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped:
		return true
	default:
		return false
	}
}

// CanTransition validates a requested status change against the
// lifecycle: forward one step along the linear sequence, or cancel from
// any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return CanCancel(from)
	}
	fromIdx := ProgressIndex(from)
	toIdx := ProgressIndex(to)
	if fromIdx == NoProgress || toIdx == NoProgress {
		return false
	}
	return toIdx == fromIdx+1
}

// StyleToken maps an order status to a presentation color token. Total
// over the known enum, neutral for anything the server sends that we
// don't recognize.
func (s OrderStatus) StyleToken() string {
	switch s {
	case OrderStatusPending:
		return "yellow"
	case OrderStatusConfirmed:
		return "blue"
	case OrderStatusShipped:
		return "purple"
	case OrderStatusDelivered:
		return "emerald"
	case OrderStatusCancelled:
		return "red"
	default:
		return "gray"
	}
}

func (s PaymentStatus) StyleToken() string {
	switch s {
	case PaymentStatusPaid:
		return "emerald"
	case PaymentStatusPending:
		return "yellow"
	case PaymentStatusFailed:
		return "red"
	default:
		return "gray"
	}
}
