package domain

type Summary struct {
	Kind               string
	From               int64 // unix second
	To                 int64 // unix second
	TotalCount         int64
	AvgDurationSeconds float64

	GroupBy string // "", "consumer", "flow", "brand", "node", "time"
	Groups  []SummaryGroup
}

type SummaryGroup struct {
	Key                string // e.g. "billing" or "2025-12-07T10:00:00Z"
	TotalCount         int64
	AvgDurationSeconds float64
}
