package diagram

// =============================================================================
// Sequence Diagram Payload
// =============================================================================

// MessageType classifies a sequence-diagram message by its arrow operator.
type MessageType string

// Message types, mapped from arrow operators: ->> is an async request,
// -> a sync request, -->> an async response, --> a sync response, and the
// -x / --x forms mark lost messages.
const (
	MessageSyncRequest   MessageType = "sync_request"
	MessageAsyncRequest  MessageType = "async_request"
	MessageSyncResponse  MessageType = "sync_response"
	MessageAsyncResponse MessageType = "async_response"
	MessageLost          MessageType = "lost"
	MessageFound         MessageType = "found"
)

// NoteSide positions a note relative to its participant(s).
type NoteSide string

// Note placements. NoteOver spans every participant the note names.
const (
	NoteLeftOf  NoteSide = "left_of"
	NoteRightOf NoteSide = "right_of"
	NoteOver    NoteSide = "over"
)

// Message is one horizontal arrow between two lifelines.
type Message struct {
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
}

// Note is an annotation attached to one or more participants.
type Note struct {
	Text         string   `json:"text"`
	Side         NoteSide `json:"side"`
	Participants []string `json:"participants"`
}

// Activation records an activate/deactivate directive for a participant.
type Activation struct {
	Participant string `json:"participant"`
	Activate    bool   `json:"activate"`
}

// Loop is a loop block bounded by its `loop` and matching `end` lines.
// StartIndex and EndIndex are indices into the classified source lines;
// Messages are the messages captured between them. Loops whose `end` never
// appears are dropped during parsing.
type Loop struct {
	Text       string    `json:"text"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Messages   []Message `json:"messages,omitempty"`
}

// SequenceData is the payload for sequence diagrams. Participants are in
// declaration-or-first-use order, deduplicated. Messages are in source
// order, which layout turns directly into vertical slots.
type SequenceData struct {
	Participants []string     `json:"participants"`
	Messages     []Message    `json:"messages"`
	Notes        []Note       `json:"notes,omitempty"`
	Activations  []Activation `json:"activations,omitempty"`
	Loops        []Loop       `json:"loops,omitempty"`
}

// HasParticipant reports whether the participant is already registered.
func (s *SequenceData) HasParticipant(name string) bool {
	for _, p := range s.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// =============================================================================
// Class Diagram Payload
// =============================================================================

// Visibility is a UML member visibility marker.
type Visibility string

// Member visibilities, mapped from the +, -, # and ~ prefixes.
const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
)

// RelationType classifies an edge between two classes.
type RelationType string

// Relationship types, mapped from the class-diagram operators.
const (
	RelationInheritance RelationType = "inheritance"
	RelationComposition RelationType = "composition"
	RelationAggregation RelationType = "aggregation"
	RelationAssociation RelationType = "association"
	RelationDependency  RelationType = "dependency"
	RelationRealization RelationType = "realization"
)

// Attribute is a class field.
type Attribute struct {
	Name       string     `json:"name"`
	Type       string     `json:"type,omitempty"`
	Visibility Visibility `json:"visibility"`
}

// Method is a class operation.
type Method struct {
	Name       string     `json:"name"`
	ReturnType string     `json:"return_type,omitempty"`
	Visibility Visibility `json:"visibility"`
	Params     []string   `json:"params,omitempty"`
}

// Class is one class box. Classes referenced only through relationships are
// synthesized with empty member lists.
type Class struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Methods    []Method    `json:"methods,omitempty"`
}

// Relation connects two classes.
//
// For inheritance the source convention is preserved exactly: in
// `A <|-- B` the left-hand token A is To and the right-hand token B is
// From. Arrowhead drawing depends on this orientation.
type Relation struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Type  RelationType `json:"type"`
	Label string       `json:"label,omitempty"`
}

// ClassData is the payload for class diagrams. Classes keep first-seen
// order so layout and render are deterministic.
type ClassData struct {
	Classes   []Class    `json:"classes"`
	Relations []Relation `json:"relations,omitempty"`
}

// ClassByName returns the class with the given name, or nil if absent.
func (c *ClassData) ClassByName(name string) *Class {
	for i := range c.Classes {
		if c.Classes[i].Name == name {
			return &c.Classes[i]
		}
	}
	return nil
}

// =============================================================================
// State Diagram Payload
// =============================================================================

// PseudoStateID is the literal token marking the start/end pseudostate.
// It never appears in StateData.States; transitions referencing it set the
// IsStart/IsEnd flags on the real state at the other endpoint, and renderers
// special-case it as a filled dot.
const PseudoStateID = "[*]"

// State is one state box. Description, when present, is the display text;
// otherwise the ID is shown.
type State struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	IsStart     bool   `json:"is_start,omitempty"`
	IsEnd       bool   `json:"is_end,omitempty"`
}

// Transition is a directed arrow between two states. Either endpoint may be
// the pseudostate token.
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// StateData is the payload for state diagrams.
type StateData struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// StateByID returns the state with the given ID, or nil if absent.
func (s *StateData) StateByID(id string) *State {
	for i := range s.States {
		if s.States[i].ID == id {
			return &s.States[i]
		}
	}
	return nil
}

// =============================================================================
// Pie Chart Payload
// =============================================================================

// PieData is the payload for pie charts. Values are non-negative; a label
// appearing twice keeps the last value. Slice ordering is a layout concern
// (descending by value), not a model concern.
type PieData struct {
	Title  string             `json:"title,omitempty"`
	Values map[string]float64 `json:"values"`
}

// Total returns the sum of all slice values.
func (p *PieData) Total() float64 {
	var sum float64
	for _, v := range p.Values {
		sum += v
	}
	return sum
}

// =============================================================================
// Timeline Payload
// =============================================================================

// TimelineEvent is one period/event pair. Multiple events may share a
// period; renderers group them in first-seen period order.
type TimelineEvent struct {
	Period string `json:"period"`
	Text   string `json:"text"`
}

// TimelineData is the payload for timelines.
type TimelineData struct {
	Title  string          `json:"title,omitempty"`
	Events []TimelineEvent `json:"events"`
}

// Periods returns the distinct periods in first-seen order.
func (t *TimelineData) Periods() []string {
	seen := make(map[string]bool, len(t.Events))
	var order []string
	for _, e := range t.Events {
		if !seen[e.Period] {
			seen[e.Period] = true
			order = append(order, e.Period)
		}
	}
	return order
}

// EventsFor returns the events belonging to one period, in source order.
func (t *TimelineData) EventsFor(period string) []TimelineEvent {
	var out []TimelineEvent
	for _, e := range t.Events {
		if e.Period == period {
			out = append(out, e)
		}
	}
	return out
}
