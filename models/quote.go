package models

// Quote is the priced, validated candidate range returned before
// submission.
type Quote struct {
	StartHour  int     `json:"startHour"`
	EndHour    int     `json:"endHour"`
	Hours      int     `json:"hours"`
	TotalPrice float64 `json:"totalPrice"`
}
