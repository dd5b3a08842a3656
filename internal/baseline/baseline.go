// Package baseline records known violations so existing debt can be
// suppressed while new violations still fail the run.
package baseline

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

// Baseline is a set of violation fingerprints.
type Baseline struct {
	fingerprints map[string]bool
}

// fingerprint identifies a violation by unit path and symbol identifier.
// Offsets are deliberately left out so edits elsewhere in the file do not
// invalidate the entry.
func fingerprint(v models.Violation) string {
	h := blake3.New()
	h.Write([]byte(v.Unit))
	h.Write([]byte{0})
	h.Write([]byte(v.USR))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// New creates a baseline covering the given violations.
func New(violations []models.Violation) *Baseline {
	b := &Baseline{fingerprints: make(map[string]bool, len(violations))}
	for _, v := range violations {
		b.fingerprints[fingerprint(v)] = true
	}
	return b
}

// fileFormat is the on-disk JSON shape.
type fileFormat struct {
	Fingerprints []string `json:"fingerprints"`
}

// Load reads a baseline file.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %s: %w", path, err)
	}

	b := &Baseline{fingerprints: make(map[string]bool, len(ff.Fingerprints))}
	for _, fp := range ff.Fingerprints {
		b.fingerprints[fp] = true
	}
	return b, nil
}

// Write stores the baseline at path with deterministic ordering.
func (b *Baseline) Write(path string) error {
	ff := fileFormat{Fingerprints: make([]string, 0, len(b.fingerprints))}
	for fp := range b.fingerprints {
		ff.Fingerprints = append(ff.Fingerprints, fp)
	}
	sort.Strings(ff.Fingerprints)

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Contains reports whether the violation is recorded in the baseline.
func (b *Baseline) Contains(v models.Violation) bool {
	return b.fingerprints[fingerprint(v)]
}

// Filter returns the violations not covered by the baseline, preserving
// order.
func (b *Baseline) Filter(violations []models.Violation) []models.Violation {
	kept := make([]models.Violation, 0, len(violations))
	for _, v := range violations {
		if !b.Contains(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// Len returns the number of recorded fingerprints.
func (b *Baseline) Len() int {
	return len(b.fingerprints)
}
