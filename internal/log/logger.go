package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging run events.
type EventLogger interface {
	Log(event RunEvent)
	Events() []RunEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []RunEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event RunEvent) {
	l.record(event)
}

func (l *MemoryLogger) record(event RunEvent) RunEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	return event
}

func (l *MemoryLogger) Events() []RunEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]RunEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []RunEvent {
	var result []RunEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() RunEvent {
	events := l.Events()
	if len(events) == 0 {
		return RunEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
	// Verbose also prints per-card events.
	Verbose bool
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event RunEvent) {
	event = l.record(event)
	if event.Type == EventCardScored && !l.Verbose {
		return
	}
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e RunEvent) string {
	tag := e.Type.String()
	// Pad tag to 14 chars for alignment
	for len(tag) < 14 {
		tag += " "
	}
	return fmt.Sprintf("#%-3d %s| %s", e.Seq, tag, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []RunEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewCatalogLoadedEvent(path string, count int) RunEvent {
	return RunEvent{
		Type:    EventCatalogLoaded,
		Value:   float64(count),
		Details: fmt.Sprintf("[OK] Loaded %d cards from %s", count, path),
	}
}

func NewWeightsLoadedEvent(source string, count int) RunEvent {
	return RunEvent{
		Type:    EventWeightsLoaded,
		Value:   float64(count),
		Details: fmt.Sprintf("Using %d weights from %s", count, source),
	}
}

func NewCardScoredEvent(cardName string, net float64) RunEvent {
	return RunEvent{
		Type:    EventCardScored,
		Card:    cardName,
		Value:   net,
		Details: fmt.Sprintf("%s scored %+.2f", cardName, net),
	}
}

func NewOvertunedEvent(cardName string, net float64) RunEvent {
	return RunEvent{
		Type:    EventOvertuned,
		Card:    cardName,
		Value:   net,
		Details: fmt.Sprintf("%s is overtuned (net %+.2f)", cardName, net),
	}
}

func NewRankedEvent(count int) RunEvent {
	return RunEvent{
		Type:    EventRanked,
		Value:   float64(count),
		Details: fmt.Sprintf("Ranked %d cards by net value", count),
	}
}

func NewSummaryEvent(mean, stddev float64) RunEvent {
	return RunEvent{
		Type:    EventSummary,
		Value:   mean,
		Details: fmt.Sprintf("Net value mean %+.2f, stddev %.2f", mean, stddev),
	}
}

func NewExportEvent(format, path string, count int) RunEvent {
	return RunEvent{
		Type:    EventExport,
		Value:   float64(count),
		Details: fmt.Sprintf("[DONE] Exported %d %s records to: %s", count, format, path),
	}
}

func NewWarningEvent(details string) RunEvent {
	return RunEvent{
		Type:    EventWarning,
		Details: "Warning: " + details,
	}
}
