package index

import (
	"context"
	"errors"

	"github.com/stephengroombbc/unusedapi/pkg/project"
)

// ErrUnavailable is returned when the indexing backend has no data for a unit
// or query. Callers treat it as "no information": the unit degrades to an
// empty result, or the surrounding heuristic falls through to its next check.
var ErrUnavailable = errors.New("index data unavailable")

// Adapter is the contract with the semantic indexing backend. Calls are
// synchronous and potentially slow out-of-process requests; implementations
// should honor ctx so callers can bound them.
type Adapter interface {
	// IndexUnit returns the unit's declaration/reference entity tree.
	IndexUnit(ctx context.Context, unit project.Unit) (*Entity, error)

	// Structure returns the unit's syntactic structure tree with per-node
	// accessibility.
	Structure(ctx context.Context, unit project.Unit) (*StructureNode, error)

	// CursorInfo answers a point query at the byte offset of a declaration
	// name.
	CursorInfo(ctx context.Context, unit project.Unit, offset int64) (*CursorInfo, error)

	// Source returns the unit's source bytes, used to translate the index
	// tree's line/column positions to byte offsets.
	Source(ctx context.Context, unit project.Unit) ([]byte, error)
}
