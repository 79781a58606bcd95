package mart

// regionRule maps a set of state codes to a region label. Rules are evaluated
// in order, first match wins; anything unmatched falls into RegionOther.
type regionRule struct {
	states map[string]struct{}
	label  string
}

// RegionOther is the fallback label for unrecognized or absent state codes.
const RegionOther = "Other"

func stateSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// regionRules is the data-driven classification table. Membership is tested
// against static sets, not ranges.
var regionRules = []regionRule{
	{stateSet("SP", "RJ", "MG", "ES"), "Southeast"},
	{stateSet("PR", "SC", "RS"), "South"},
	{stateSet("BA", "SE", "AL", "PE", "PB", "RN", "CE", "PI", "MA"), "Northeast"},
	{stateSet("MT", "MS", "GO", "DF"), "Midwest"},
	{stateSet("AM", "RR", "AP", "PA", "TO", "RO", "AC"), "North"},
}

// RegionForState classifies a customer state code into a region label. It is
// a total function: any input, including the empty string, yields a label.
func RegionForState(state string) string {
	for _, rule := range regionRules {
		if _, ok := rule.states[state]; ok {
			return rule.label
		}
	}
	return RegionOther
}
