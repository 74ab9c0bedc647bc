package intcode

// StepMeter counts executed instructions and optionally enforces a budget.
type StepMeter struct {
	consumed uint64
	limit    uint64
}

// NewStepMeter creates a meter allowing limit instructions.
// A zero limit counts without enforcing anything.
func NewStepMeter(limit uint64) *StepMeter {
	return &StepMeter{limit: limit}
}

// Consume records one instruction.
// Returns ErrStepLimitExceeded once the budget is spent.
func (sm *StepMeter) Consume() error {
	if sm.limit != 0 && sm.consumed >= sm.limit {
		return ErrStepLimitExceeded
	}
	sm.consumed++
	return nil
}

// Consumed returns the number of instructions recorded.
func (sm *StepMeter) Consumed() uint64 {
	return sm.consumed
}

// Remaining returns the instructions left in the budget.
// An unlimited meter always reports zero.
func (sm *StepMeter) Remaining() uint64 {
	if sm.limit == 0 || sm.consumed >= sm.limit {
		return 0
	}
	return sm.limit - sm.consumed
}

// Limit returns the budget, zero meaning unlimited.
func (sm *StepMeter) Limit() uint64 {
	return sm.limit
}

// IsExhausted reports whether a limited budget is spent.
func (sm *StepMeter) IsExhausted() bool {
	return sm.limit != 0 && sm.consumed >= sm.limit
}

// Reset clears the count.
func (sm *StepMeter) Reset() {
	sm.consumed = 0
}
