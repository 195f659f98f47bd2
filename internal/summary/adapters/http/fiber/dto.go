package fiber

type SummaryGroupResponse struct {
	Key                string  `json:"key"`
	TotalCount         int64   `json:"total_count"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}

type SummaryResponse struct {
	Kind               string                 `json:"kind"`
	From               int64                  `json:"from"`
	To                 int64                  `json:"to"`
	TotalCount         int64                  `json:"total_count"`
	AvgDurationSeconds float64                `json:"avg_duration_seconds"`
	GroupBy            string                 `json:"group_by,omitempty"`
	Groups             []SummaryGroupResponse `json:"groups,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range"`
}
