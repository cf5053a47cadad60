package redemption

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusReleased  Status = "RELEASED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusConfirmed, StatusReleased, StatusExpired:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusReleased || s == StatusExpired
}

// IsActive reports whether the entry holds capacity or attribution.
func (s Status) IsActive() bool {
	return s == StatusReserved || s == StatusConfirmed
}

func (s Status) String() string {
	return string(s)
}

// Outcome is what a requested transition amounts to given the stored status.
type Outcome int

const (
	// OutcomeApply: the entry is RESERVED and moves to the target.
	OutcomeApply Outcome = iota
	// OutcomeNoop: a retry of a transition that already happened.
	OutcomeNoop
	// OutcomeConflict: the entry ended in an incompatible state.
	OutcomeConflict
)

// Decide resolves a requested transition. Only RESERVED has outgoing
// transitions. Releasing an EXPIRED entry is a no-op because its capacity was
// already returned.
func Decide(current, target Status) Outcome {
	if current == StatusReserved && target.IsTerminal() {
		return OutcomeApply
	}
	if current == target {
		return OutcomeNoop
	}
	if target == StatusReleased && current == StatusExpired {
		return OutcomeNoop
	}
	return OutcomeConflict
}
