package schema

import "ivr-event-metrics/internal/events/core/domain"

// Wire keys.
const (
	KeyConsumer    = "consumer"
	KeyFlow        = "flow"
	KeyBrand       = "brand"
	KeyNode        = "node"
	KeyTime        = "time"
	KeyCloseStatus = "close-status"
	KeyDerivedTo   = "derived-to"
	KeyService     = "service"
	KeyResultCode  = "result-code"
	KeyTimeout     = "timeout"
	KeyDuration    = "duration"

	KeyInteractionStart = "interaction-start-time"
	KeyInteractionEnd   = "interaction-end-time"
	KeyServiceCallStart = "service-call-start-time"
	KeyServiceCallEnd   = "service-call-end-time"

	CloseStatusDerived = "derived"
)

func common() Schema {
	return Schema{
		{Key: KeyConsumer, Parser: String},
		{Key: KeyFlow, Parser: String},
		{Key: KeyBrand, Parser: String},
		{Key: KeyNode, Parser: String},
	}
}

var Start = append(common(),
	Field{Key: KeyTime, Parser: String},
)

var End = append(common(),
	Field{Key: KeyCloseStatus, Parser: String},
	Field{
		Key:      KeyDerivedTo,
		Parser:   String,
		Required: Equals(KeyCloseStatus, CloseStatusDerived),
		Default:  "",
	},
	Field{Key: KeyInteractionStart, Parser: Timestamp},
	Field{Key: KeyInteractionEnd, Parser: Timestamp},
	Field{Key: KeyTime, Parser: String},
)

// ServiceCall also accepts the older shape, where a numeric duration replaces
// the two timestamps. Timestamps win when both are sent.
var ServiceCall = append(common(),
	Field{Key: KeyService, Parser: String},
	Field{Key: KeyResultCode, Parser: String},
	Field{
		Key:      KeyServiceCallStart,
		Parser:   Timestamp,
		Required: Absent(KeyDuration),
	},
	Field{
		Key:      KeyServiceCallEnd,
		Parser:   Timestamp,
		Required: Any(Absent(KeyDuration), Parsed(KeyServiceCallStart)),
	},
	Field{
		Key:     KeyDuration,
		Parser:  Number,
		Applies: NotParsed(KeyServiceCallStart),
	},
	Field{Key: KeyTimeout, Parser: String},
	Field{Key: KeyTime, Parser: String},
)

// ForKind returns the schema for an endpoint kind.
func ForKind(k domain.Kind) (Schema, bool) {
	switch k {
	case domain.KindStart:
		return Start, true
	case domain.KindEnd:
		return End, true
	case domain.KindServiceCall:
		return ServiceCall, true
	}
	return nil, false
}
