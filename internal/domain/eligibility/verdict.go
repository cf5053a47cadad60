package eligibility

// Reason is the machine readable cause of an ineligible verdict.
type Reason string

const (
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonInactive          Reason = "INACTIVE"
	ReasonOutOfWindow       Reason = "OUT_OF_WINDOW"
	ReasonBelowMinimum      Reason = "BELOW_MINIMUM"
	ReasonGloballyExhausted Reason = "GLOBALLY_EXHAUSTED"
	ReasonUserExhausted     Reason = "USER_EXHAUSTED"
	ReasonAlreadyAttributed Reason = "ALREADY_ATTRIBUTED"
)

var messages = map[Reason]string{
	ReasonNotFound:          "this code does not exist",
	ReasonInactive:          "this code is not active",
	ReasonOutOfWindow:       "this code is not valid at this time",
	ReasonBelowMinimum:      "the order amount is below the minimum for this code",
	ReasonGloballyExhausted: "this code has reached its usage limit",
	ReasonUserExhausted:     "you have already used this code the maximum number of times",
	ReasonAlreadyAttributed: "this account has already been referred",
}

// Message is shown to end users verbatim.
func (r Reason) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return string(r)
}

func (r Reason) String() string {
	return string(r)
}

// Verdict is a business outcome, not a fault.
type Verdict struct {
	Eligible bool
	Reason   Reason
	Amount   int64
}

func Eligible(amount int64) Verdict {
	return Verdict{Eligible: true, Amount: amount}
}

func Ineligible(reason Reason) Verdict {
	return Verdict{Reason: reason}
}

func (v Verdict) Message() string {
	if v.Eligible {
		return ""
	}
	return v.Reason.Message()
}
