package stream

// Kind tags an Event variant.
type Kind int

const (
	// KindChunk carries a content fragment to append.
	KindChunk Kind = iota + 1
	// KindTool records a tool invocation, order-preserving.
	KindTool
	// KindDone ends a turn successfully.
	KindDone
	// KindFailed ends a turn with a backend-reported failure.
	KindFailed
)

// Event is one decoded protocol event. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Event struct {
	Kind    Kind
	Text    string // KindChunk
	Tool    string // KindTool
	Message string // KindFailed
}

// Terminal reports whether the event ends the turn.
func (e Event) Terminal() bool {
	return e.Kind == KindDone || e.Kind == KindFailed
}

// record is the wire shape of one data frame. A single record may carry
// several of these fields at once; events fans it out into
// discrete events, tools before content so badges surface first.
type record struct {
	Chunk string `json:"chunk"`
	Tool  string `json:"tool"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

func (r record) events() []Event {
	var out []Event
	if r.Tool != "" {
		out = append(out, Event{Kind: KindTool, Tool: r.Tool})
	}
	if r.Chunk != "" {
		out = append(out, Event{Kind: KindChunk, Text: r.Chunk})
	}
	// A reported error outranks a done marker in the same record.
	if r.Error != "" {
		return append(out, Event{Kind: KindFailed, Message: r.Error})
	}
	if r.Done {
		out = append(out, Event{Kind: KindDone})
	}
	return out
}
