package domain

// Kind identifies which lifecycle milestone a record describes.
type Kind string

const (
	KindStart       Kind = "start"
	KindEnd         Kind = "end"
	KindServiceCall Kind = "service-call"
)

func (k Kind) Valid() bool {
	switch k {
	case KindStart, KindEnd, KindServiceCall:
		return true
	}
	return false
}

// Record is the flat JSON object submitted by a caller.
type Record map[string]any

type StartLabels struct {
	Consumer string
	Flow     string
	Brand    string
	Node     string
}

type EndLabels struct {
	Consumer    string
	Flow        string
	Brand       string
	Node        string
	CloseStatus string
	DerivedTo   string
}

type ServiceCallLabels struct {
	Consumer   string
	Flow       string
	Brand      string
	Node       string
	Service    string
	ResultCode string
	Timeout    string
}

// Event is a validated record. Exactly one of the label pointers is set,
// matching Kind. Duration is nil for start events.
type Event struct {
	Kind Kind

	Start       *StartLabels
	End         *EndLabels
	ServiceCall *ServiceCallLabels

	Duration  *float64 // seconds, may be negative
	EventTime string   // caller supplied "time", passed through
	Record    Record
}

// Common returns the four labels shared by every kind.
func (e *Event) Common() (consumer, flow, brand, node string) {
	switch {
	case e.Start != nil:
		return e.Start.Consumer, e.Start.Flow, e.Start.Brand, e.Start.Node
	case e.End != nil:
		return e.End.Consumer, e.End.Flow, e.End.Brand, e.End.Node
	case e.ServiceCall != nil:
		return e.ServiceCall.Consumer, e.ServiceCall.Flow, e.ServiceCall.Brand, e.ServiceCall.Node
	}
	return "", "", "", ""
}

// Labels flattens the label set using the wire key names.
func (e *Event) Labels() map[string]string {
	consumer, flow, brand, node := e.Common()
	out := map[string]string{
		"consumer": consumer,
		"flow":     flow,
		"brand":    brand,
		"node":     node,
	}
	switch {
	case e.End != nil:
		out["close-status"] = e.End.CloseStatus
		out["derived-to"] = e.End.DerivedTo
	case e.ServiceCall != nil:
		out["service"] = e.ServiceCall.Service
		out["result-code"] = e.ServiceCall.ResultCode
		out["timeout"] = e.ServiceCall.Timeout
	}
	return out
}
