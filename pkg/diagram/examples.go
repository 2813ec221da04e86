package diagram

// Canned example texts, one per fully supported diagram kind. Useful for
// demos, CLI defaults, and as fixtures in downstream tests.
const (
	// ExampleFlowchart is a small decision flow exercising labels, shapes
	// and yes/no branches.
	ExampleFlowchart = `graph TD
A[Start] --> B{Is it?}
B -->|Yes| C[OK]
B -->|No| D[End]
C --> E(Done)`

	// ExampleSequence is a two-party conversation with a note, an
	// activation and a loop.
	ExampleSequence = `sequenceDiagram
participant Alice
participant Bob
Alice->>Bob: Hello Bob, how are you?
Bob-->>Alice: Great!
Note right of Bob: Bob thinks
loop Every minute
Alice->>Bob: Still there?
end
activate Alice
Alice->>Bob: Another message
deactivate Alice`

	// ExampleClass shows member blocks and the main relationship kinds.
	ExampleClass = `classDiagram
class Animal {
  +String name
  +int age
  +makeSound() void
}
class Dog {
  +fetch() bool
}
Animal <|-- Dog
Animal *-- Organ
Dog --> Toy : plays with`

	// ExampleState is a three-state machine with start and end
	// pseudostates.
	ExampleState = `stateDiagram-v2
[*] --> Idle
Idle --> Running : start
Running --> Idle : stop
Running --> [*] : shutdown`

	// ExamplePie is the classic pet-ownership pie.
	ExamplePie = `pie title Pets adopted by volunteers
"Dogs" : 386
"Cats" : 85
"Rats" : 15`

	// ExampleTimeline shows grouped events per period.
	ExampleTimeline = `timeline
title History of Social Media
2002 : LinkedIn
2004 : Facebook
     : Google
2005 : YouTube
2006 : Twitter`
)

// Examples returns the canned example texts keyed by kind.
func Examples() map[Kind]string {
	return map[Kind]string{
		KindFlowchart: ExampleFlowchart,
		KindSequence:  ExampleSequence,
		KindClass:     ExampleClass,
		KindState:     ExampleState,
		KindPie:       ExamplePie,
		KindTimeline:  ExampleTimeline,
	}
}
