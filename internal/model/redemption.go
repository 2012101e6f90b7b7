package model

// RedemptionLog is one line of the exchange ledger. StudentName and
// PrizeName are value snapshots taken at transaction time: renaming a
// student or prize later must not rewrite history.
type RedemptionLog struct {
	ID          string `json:"id"`
	StudentName string `json:"studentName"`
	PrizeName   string `json:"prizeName"`
	Cost        int    `json:"cost"`
	Timestamp   string `json:"timestamp"`
}
