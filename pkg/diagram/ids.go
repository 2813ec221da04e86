package diagram

import (
	"fmt"

	"github.com/google/uuid"
)

// edgeNamespace is the UUID namespace for deterministic edge identifiers.
// Fixed so that parsing the same text twice yields structurally equal
// diagrams, including IDs.
var edgeNamespace = uuid.MustParse("8f2a47fa-3b1c-4c55-9e41-0d6a9b2f7c13")

// EdgeID derives a stable, opaque identifier for an edge from its endpoints,
// label, type and ordinal (position among edges with identical fields -
// duplicate edges are legal and must still get distinct IDs).
func EdgeID(from, to, label string, typ EdgeType, ordinal int) string {
	name := fmt.Sprintf("%s|%s|%s|%s|%d", from, to, label, typ, ordinal)
	return uuid.NewSHA1(edgeNamespace, []byte(name)).String()
}
