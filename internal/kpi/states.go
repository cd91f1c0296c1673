package kpi

// Workflow states referenced by individual metrics.
const (
	StateNeedsTriage            = "Needs Triage"
	StateProductReview          = "Product Review"
	StateCommunityManagerReview = "Community Manager Review"
	StateAwaitingPrioritization = "Awaiting Prioritization"
	StateEngineeringReview      = "Engineering Review"
)

// engineeringStates is the fixed set of workflow states whose time counts
// toward the total engineering metric. Read-only configuration data.
var engineeringStates = map[string]struct{}{
	StateNeedsTriage:            {},
	StateProductReview:          {},
	StateCommunityManagerReview: {},
	StateAwaitingPrioritization: {},
	StateEngineeringReview:      {},
}

// IsEngineeringState reports whether the named workflow state is owned by
// engineering. Unknown names, including near-miss casing, return false.
func IsEngineeringState(name string) bool {
	_, ok := engineeringStates[name]
	return ok
}
