package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stephengroombbc/unusedapi/pkg/project"
	"gopkg.in/yaml.v3"
)

// defaultFixtureCacheSize bounds how many parsed unit records stay resident.
const defaultFixtureCacheSize = 256

// unitFixture is the recorded index data for one compilation unit.
type unitFixture struct {
	Source    string                `yaml:"source"`
	Index     *Entity               `yaml:"index"`
	Structure *StructureNode        `yaml:"structure"`
	Cursors   map[int64]*CursorInfo `yaml:"cursors"`
}

// FixtureAdapter serves recorded index data from a directory of YAML files,
// one per compilation unit. It lets the analysis run offline against a
// previously captured index store and backs the hermetic tests.
//
// The fixture for a unit lives at <dir>/<unit path>.yaml, with the unit path
// made relative by stripping its leading separator.
type FixtureAdapter struct {
	dir   string
	cache *lru.Cache[string, *unitFixture]
}

// NewFixtureAdapter creates an adapter reading fixtures under dir.
func NewFixtureAdapter(dir string) (*FixtureAdapter, error) {
	cache, err := lru.New[string, *unitFixture](defaultFixtureCacheSize)
	if err != nil {
		return nil, err
	}
	return &FixtureAdapter{dir: dir, cache: cache}, nil
}

// FixturePath returns the fixture file path for a unit path.
func (a *FixtureAdapter) FixturePath(unitPath string) string {
	rel := strings.TrimPrefix(unitPath, string(filepath.Separator))
	return filepath.Join(a.dir, rel+".yaml")
}

func (a *FixtureAdapter) load(unit project.Unit) (*unitFixture, error) {
	if fx, ok := a.cache.Get(unit.Path); ok {
		return fx, nil
	}

	data, err := os.ReadFile(a.FixturePath(unit.Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUnavailable
		}
		return nil, err
	}

	fx := &unitFixture{}
	if err := yaml.Unmarshal(data, fx); err != nil {
		return nil, fmt.Errorf("malformed fixture for %s: %w", unit.Path, err)
	}

	a.cache.Add(unit.Path, fx)
	return fx, nil
}

// IndexUnit returns the recorded entity tree.
func (a *FixtureAdapter) IndexUnit(ctx context.Context, unit project.Unit) (*Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fx, err := a.load(unit)
	if err != nil {
		return nil, err
	}
	if fx.Index == nil {
		return nil, ErrUnavailable
	}
	return fx.Index, nil
}

// Structure returns the recorded structure tree.
func (a *FixtureAdapter) Structure(ctx context.Context, unit project.Unit) (*StructureNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fx, err := a.load(unit)
	if err != nil {
		return nil, err
	}
	if fx.Structure == nil {
		return nil, ErrUnavailable
	}
	return fx.Structure, nil
}

// CursorInfo returns the recorded point-query result at offset.
func (a *FixtureAdapter) CursorInfo(ctx context.Context, unit project.Unit, offset int64) (*CursorInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fx, err := a.load(unit)
	if err != nil {
		return nil, err
	}
	info, ok := fx.Cursors[offset]
	if !ok || info == nil {
		return nil, ErrUnavailable
	}
	return info, nil
}

// Source returns the recorded source text.
func (a *FixtureAdapter) Source(ctx context.Context, unit project.Unit) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fx, err := a.load(unit)
	if err != nil {
		return nil, err
	}
	if fx.Source == "" {
		return nil, ErrUnavailable
	}
	return []byte(fx.Source), nil
}

var _ Adapter = (*FixtureAdapter)(nil)
