package analyzer

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cespare/xxhash/v2"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

// ReferenceIndex is the project-wide reference set: per referencing module,
// a bitmap of hashed symbol identifiers. Built once after all units are
// collected, read-only afterwards.
//
// Identifiers are folded to 64-bit hashes. A collision can only make a
// symbol look used, which errs toward under-reporting.
type ReferenceIndex struct {
	byModule map[string]*roaring64.Bitmap
}

// NewReferenceIndex builds the index from per-unit symbol sets.
func NewReferenceIndex(units []models.UnitSymbols) *ReferenceIndex {
	idx := &ReferenceIndex{byModule: make(map[string]*roaring64.Bitmap)}
	for _, u := range units {
		for _, ref := range u.Referenced {
			bm, ok := idx.byModule[ref.Module]
			if !ok {
				bm = roaring64.New()
				idx.byModule[ref.Module] = bm
			}
			bm.Add(symbolBit(ref.USR))
		}
	}
	return idx
}

func symbolBit(usr string) uint64 {
	return xxhash.Sum64String(usr)
}

// UsedOutside reports whether the identifier is referenced from any module
// other than owner.
func (idx *ReferenceIndex) UsedOutside(usr, owner string) bool {
	bit := symbolBit(usr)
	for module, bm := range idx.byModule {
		if module == owner {
			continue
		}
		if bm.Contains(bit) {
			return true
		}
	}
	return false
}

// Modules returns the number of modules holding at least one reference.
func (idx *ReferenceIndex) Modules() int {
	return len(idx.byModule)
}

// References returns the total number of distinct identifier/module pairs.
func (idx *ReferenceIndex) References() uint64 {
	var n uint64
	for _, bm := range idx.byModule {
		n += bm.GetCardinality()
	}
	return n
}
