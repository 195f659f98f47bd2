package fiber

const (
	ResultOK    = "ok"
	ResultError = "error"

	// TimestampLayout is ISO-8601 UTC with microseconds.
	TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// OKResponse acknowledges an accepted event
// @Description Event accepted
type OKResponse struct {
	Result    string `json:"result" example:"ok"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:10.123456Z"`
}

// ErrorResponse carries an in-band error. It is always sent with HTTP 200.
// @Description Event rejected
type ErrorResponse struct {
	Result      string `json:"result" example:"error"`
	Description string `json:"description" example:"Missing 'consumer' field"`
}
