package models

// Dashboard holds the precomputed counters. A nil field means the server
// did not report it.
type Dashboard struct {
	UserCount           *int `json:"userCount"`
	NotApprovedAdsCount *int `json:"notApprovedAdsCount"`
	ApprovedAdsCount    *int `json:"approvedAdsCount"`
}

// Complete reports whether all three counters are present.
func (d Dashboard) Complete() bool {
	return d.UserCount != nil && d.NotApprovedAdsCount != nil && d.ApprovedAdsCount != nil
}

// CounterText formats a counter for display, "-" when unavailable.
func CounterText(v *int) string {
	if v == nil {
		return "-"
	}
	return formatInt(*v)
}
