package domain

// LogEntry is the immutable record of one successful derivation.
type LogEntry struct {
	// Step is global across the run (1-based), never reset per sweep.
	Step int `json:"step"`
	// Sweep is the sweep the derivation happened in (1-based).
	Sweep                int                   `json:"sweep"`
	RuleID               string                `json:"rule_id"`
	Antecedents          []string              `json:"antecedents"`
	Consequent           string                `json:"consequent"`
	Explanation          string                `json:"explanation,omitempty"`
	MatchedAntecedents   []string              `json:"matched_antecedents"`
	AntecedentStatus     map[string]bool       `json:"antecedent_status"`
	AntecedentProvenance map[string]Provenance `json:"antecedent_provenance"`
	AddedNew             bool                  `json:"added_new"`
	// Snapshot is the sorted fact set right after the consequent was added.
	Snapshot []string `json:"fact_snapshot"`
}

// StopReason tells why a run ended.
type StopReason string

const (
	// StopFixpoint means a sweep derived nothing new.
	StopFixpoint StopReason = "fixpoint"
	// StopGoalsReached means every requested goal fact became present.
	StopGoalsReached StopReason = "goals_reached"
	// StopSweepLimit means the sweep bound was exhausted. It indicates a
	// defect in the engine or catalog, never a normal exit.
	StopSweepLimit StopReason = "sweep_limit"
	// StopCanceled means the caller's context was done between sweeps.
	StopCanceled StopReason = "canceled"
)

// Result is the outcome of one inference run.
type Result struct {
	// Facts is the sorted final fact set.
	Facts      []string   `json:"facts"`
	Log        []LogEntry `json:"log"`
	Sweeps     int        `json:"sweeps"`
	StopReason StopReason `json:"stop_reason"`
}

// Converged reports whether the run reached a fixpoint.
func (r *Result) Converged() bool {
	return r.StopReason == StopFixpoint
}

// Fired returns the IDs of the rules that derived a fact, in log order.
func (r *Result) Fired() []string {
	ids := make([]string, len(r.Log))
	for i, e := range r.Log {
		ids[i] = e.RuleID
	}
	return ids
}
