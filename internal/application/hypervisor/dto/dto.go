package dto

// CheckInRequest maps host ids to the guest ids they report.
type CheckInRequest map[string][]string

type HostResponse struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	GuestCount int    `json:"guest_count"`
}

// CheckInResult partitions the reported hosts. Failed entries read
// "<host id>: <message>".
type CheckInResult struct {
	Created   []HostResponse `json:"created"`
	Updated   []HostResponse `json:"updated"`
	Unchanged []HostResponse `json:"unchanged"`
	Failed    []string       `json:"failed"`
}
