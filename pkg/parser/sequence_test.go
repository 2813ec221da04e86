package parser

import (
	"testing"

	"github.com/inklab/merview/pkg/diagram"
)

const sequenceFixture = `sequenceDiagram
participant Alice
participant Bob
Alice->>Bob: Hello Bob
Bob-->>Alice: Hi Alice
Note right of Bob: Bob thinks
loop Every minute
Alice->>Bob: Still there?
end`

func TestParseSequenceFixture(t *testing.T) {
	d := Parse(sequenceFixture)

	if d.Kind != diagram.KindSequence {
		t.Fatalf("Kind = %q, want %q", d.Kind, diagram.KindSequence)
	}
	s := d.Sequence
	if s == nil {
		t.Fatal("Sequence payload is nil")
	}

	wantParticipants := []string{"Alice", "Bob"}
	if len(s.Participants) != len(wantParticipants) {
		t.Fatalf("len(Participants) = %d, want %d", len(s.Participants), len(wantParticipants))
	}
	for i, want := range wantParticipants {
		if s.Participants[i] != want {
			t.Errorf("Participants[%d] = %q, want %q", i, s.Participants[i], want)
		}
	}

	if len(s.Messages) != 3 {
		t.Fatalf("len(Messages) = %d, want 3", len(s.Messages))
	}
	if s.Messages[0].Type != diagram.MessageAsyncRequest {
		t.Errorf("Messages[0].Type = %q, want %q", s.Messages[0].Type, diagram.MessageAsyncRequest)
	}
	if s.Messages[0].Text != "Hello Bob" {
		t.Errorf("Messages[0].Text = %q, want %q", s.Messages[0].Text, "Hello Bob")
	}
	if s.Messages[1].Type != diagram.MessageAsyncResponse {
		t.Errorf("Messages[1].Type = %q, want %q", s.Messages[1].Type, diagram.MessageAsyncResponse)
	}

	if len(s.Notes) != 1 {
		t.Fatalf("len(Notes) = %d, want 1", len(s.Notes))
	}
	note := s.Notes[0]
	if note.Side != diagram.NoteRightOf || note.Text != "Bob thinks" {
		t.Errorf("Note = {%q %q}, want {right_of, Bob thinks}", note.Side, note.Text)
	}

	if len(s.Loops) != 1 {
		t.Fatalf("len(Loops) = %d, want 1", len(s.Loops))
	}
	loop := s.Loops[0]
	if loop.Text != "Every minute" {
		t.Errorf("Loop.Text = %q, want %q", loop.Text, "Every minute")
	}
	if len(loop.Messages) != 1 || loop.Messages[0].Text != "Still there?" {
		t.Errorf("Loop.Messages = %+v, want the single enclosed message", loop.Messages)
	}
}

func TestParseSequenceArrowTypes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want diagram.MessageType
	}{
		{"sync request", "A->B: m", diagram.MessageSyncRequest},
		{"async request", "A->>B: m", diagram.MessageAsyncRequest},
		{"sync response", "A-->B: m", diagram.MessageSyncResponse},
		{"async response", "A-->>B: m", diagram.MessageAsyncResponse},
		{"lost short", "A-xB: m", diagram.MessageLost},
		{"lost long", "A--xB: m", diagram.MessageLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse("sequenceDiagram\n" + tt.line)
			if len(d.Sequence.Messages) != 1 {
				t.Fatalf("len(Messages) = %d, want 1", len(d.Sequence.Messages))
			}
			if got := d.Sequence.Messages[0].Type; got != tt.want {
				t.Errorf("Type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSequenceImplicitParticipants(t *testing.T) {
	d := Parse("sequenceDiagram\nClient->>Server: req")
	s := d.Sequence
	if len(s.Participants) != 2 {
		t.Fatalf("len(Participants) = %d, want 2", len(s.Participants))
	}
	if s.Participants[0] != "Client" || s.Participants[1] != "Server" {
		t.Errorf("Participants = %v, want [Client Server]", s.Participants)
	}
}

func TestParseSequenceAlias(t *testing.T) {
	d := Parse("sequenceDiagram\nparticipant A as Alice in Wonderland\nA->>B: hi")
	s := d.Sequence
	if !s.HasParticipant("A") {
		t.Error("alias declaration should register the canonical ID")
	}
	if s.HasParticipant("Alice in Wonderland") {
		t.Error("alias display text should not become a participant")
	}
}

func TestParseSequenceActivations(t *testing.T) {
	d := Parse("sequenceDiagram\nactivate Alice\nAlice->>Bob: hi\ndeactivate Alice")
	s := d.Sequence
	if len(s.Activations) != 2 {
		t.Fatalf("len(Activations) = %d, want 2", len(s.Activations))
	}
	if !s.Activations[0].Activate || s.Activations[1].Activate {
		t.Errorf("Activations = %+v, want activate then deactivate", s.Activations)
	}
}

func TestParseSequenceUnterminatedLoopDropped(t *testing.T) {
	d := Parse("sequenceDiagram\nloop Forever\nA->>B: hi")
	s := d.Sequence
	if len(s.Loops) != 0 {
		t.Errorf("len(Loops) = %d, want 0 (unterminated loop dropped)", len(s.Loops))
	}
	if len(s.Messages) != 1 {
		t.Errorf("len(Messages) = %d, want 1 (message still kept)", len(s.Messages))
	}
}

func TestParseSequenceAltBlockTransparent(t *testing.T) {
	text := `sequenceDiagram
alt happy path
A->>B: yes
else sad path
A->>B: no
end`
	d := Parse(text)
	s := d.Sequence
	if len(s.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2 (alt bodies parsed)", len(s.Messages))
	}
	if len(s.Loops) != 0 {
		t.Errorf("len(Loops) = %d, want 0 (alt is not a loop)", len(s.Loops))
	}
}

func TestParseSequenceParticipantNamedAndroid(t *testing.T) {
	// "android" starts with "and"; only exact branch keywords divide.
	d := Parse("sequenceDiagram\nandroid->>Bob: ping")
	s := d.Sequence
	if !s.HasParticipant("android") {
		t.Errorf("Participants = %v, want android registered", s.Participants)
	}
}
