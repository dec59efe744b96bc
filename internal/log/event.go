package log

// EventType enumerates the observable steps of a scoring run.
type EventType int

const (
	EventCatalogLoaded EventType = iota
	EventWeightsLoaded
	EventCardScored
	EventOvertuned
	EventRanked
	EventSummary
	EventExport
	EventWarning
)

func (e EventType) String() string {
	switch e {
	case EventCatalogLoaded:
		return "CatalogLoaded"
	case EventWeightsLoaded:
		return "WeightsLoaded"
	case EventCardScored:
		return "CardScored"
	case EventOvertuned:
		return "Overtuned"
	case EventRanked:
		return "Ranked"
	case EventSummary:
		return "Summary"
	case EventExport:
		return "Export"
	case EventWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// RunEvent represents a single observable event in a scoring run.
type RunEvent struct {
	Seq     int       // monotonic sequence number
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Value   float64   // net value, count or similar (if applicable)
	Details string    // human-readable detail string
}
