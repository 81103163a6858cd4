package types

// SevereConditionCodes is the fixed set of WeatherAPI condition codes that are
// considered delivery-impacting. This is policy data, not logic: the evaluator
// does a membership test and nothing else, and tests exercise the policy by
// editing expectations here rather than chasing literals across call sites.
//
//	1063 - patchy rain possible
//	1186 - moderate rain at times
//	1189 - moderate rain
//	1192 - heavy rain at times
//	1195 - heavy rain
var SevereConditionCodes = map[int]struct{}{
	1063: {},
	1186: {},
	1189: {},
	1192: {},
	1195: {},
}

// IsSevereCode reports whether a provider condition code belongs to the
// severe set.
func IsSevereCode(code int) bool {
	_, ok := SevereConditionCodes[code]
	return ok
}
