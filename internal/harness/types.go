package harness

// Result is the outcome of running one scenario.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every case matched its expectation.
	Pass bool `json:"pass"`

	// Cases holds one entry per case, in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors contains expectation mismatches.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// CaseResult is what the calculator produced for one case.
type CaseResult struct {
	Name     string   `json:"name"`
	Outcome  string   `json:"outcome"`
	Found    bool     `json:"found"`
	Cost     float64  `json:"cost"`
	Length   int      `json:"length"`
	Expanded int      `json:"expanded"`
	Drawing  []string `json:"drawing"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
