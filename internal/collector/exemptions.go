package collector

import (
	"strings"

	"github.com/stephengroombbc/unusedapi/internal/index"
)

// declContext is one declaration candidate plus everything the exemption
// predicates may inspect. The cursor query is expensive and failable, so it
// is fetched lazily and at most once; a failed query means "no information"
// and the predicate needing it falls through.
type declContext struct {
	unit   *unitState
	entity *index.Entity
	offset int64

	cursor     *index.CursorInfo
	cursorDone bool
}

func (d *declContext) cursorInfo() *index.CursorInfo {
	if !d.cursorDone {
		d.cursorDone = true
		info, err := d.unit.adapter.CursorInfo(d.unit.ctx, d.unit.unit, d.offset)
		if err == nil {
			d.cursor = info
		}
	}
	return d.cursor
}

// exemption predicates in evaluation order; the first match drops the
// candidate. Each one covers a way a declaration can be used without any
// statically countable reference.
var exemptions = []func(*declContext) bool{
	isImplicitOrTestMarker,
	isCodingKeysSynthesis,
	isTestDiscoveryShim,
	hasRuntimeSignatureMarker,
	isOverride,
	isDefaultImplementation,
	hasEntryPointAttribute,
	isKnownDelegateMethod,
	isPreviewProvider,
	hasExternallyWiredStorage,
}

func (u *unitState) exempt(e *index.Entity, offset int64) bool {
	d := &declContext{unit: u, entity: e, offset: offset}
	for _, rule := range exemptions {
		if rule(d) {
			return true
		}
	}
	return false
}

// isImplicitOrTestMarker drops compiler-synthesized declarations and
// test-discovery markers.
func isImplicitOrTestMarker(d *declContext) bool {
	if d.entity.Implicit {
		return true
	}
	return d.entity.Kind == index.KindTestCandidate || d.entity.Kind == index.KindTestSuite
}

// isCodingKeysSynthesis drops a CodingKeys enum conforming to the coding-key
// contract; the serialization framework uses it without emitting references.
func isCodingKeysSynthesis(d *declContext) bool {
	if d.entity.Kind != index.KindEnum || d.entity.Name != "CodingKeys" {
		return false
	}
	for i := range d.entity.Children {
		child := &d.entity.Children[i]
		if child.USR == index.CodingKeyUSR || child.HasRelated(index.CodingKeyUSR) {
			return true
		}
	}
	return false
}

// isTestDiscoveryShim drops the static allTests list used for test discovery
// on platforms without runtime reflection.
func isTestDiscoveryShim(d *declContext) bool {
	if d.entity.Kind != index.KindVarStatic || d.entity.Name != "allTests" {
		return false
	}
	for i := range d.entity.Children {
		if d.entity.Children[i].Kind == index.KindTestCandidate {
			return true
		}
	}
	return false
}

// signatureMarkers are annotations meaning the declaration is invoked through
// reflection or dynamic dispatch rather than a static reference.
var signatureMarkers = []string{
	"@IBAction",
	"@IBSegueAction",
	"@objc",
	"dynamic ",
}

func hasRuntimeSignatureMarker(d *declContext) bool {
	info := d.cursorInfo()
	if info == nil || info.AnnotatedSignature == "" {
		return false
	}
	for _, marker := range signatureMarkers {
		if strings.Contains(info.AnnotatedSignature, marker) {
			return true
		}
	}
	return false
}

// isOverride drops supertype overrides; they are reached via dynamic dispatch
// from the base declaration.
func isOverride(d *declContext) bool {
	info := d.cursorInfo()
	return info != nil && info.IsOverride
}

// isDefaultImplementation drops declarations that satisfy a protocol
// requirement through a default implementation. Requires agreement between
// the entity tree and the cursor query, since either alone over-matches.
func isDefaultImplementation(d *declContext) bool {
	if len(d.entity.Related) == 0 {
		return false
	}
	info := d.cursorInfo()
	return info != nil && info.HasRelated
}

// entryPointAttrs mark declarations invoked by the framework, not by source.
var entryPointAttrs = []string{
	index.AttrMain,
	index.AttrUIApplicationMain,
	index.AttrNSApplicationMain,
	index.AttrOverride,
}

func hasEntryPointAttribute(d *declContext) bool {
	for _, attr := range entryPointAttrs {
		if d.entity.HasAttribute(attr) {
			return true
		}
	}
	return false
}

// delegateMethodNames are framework delegate callbacks the indexer fails to
// record references for. Combined with runtime name exposure they are always
// invoked dynamically.
var delegateMethodNames = map[string]bool{
	"navigationBarSupportedInterfaceOrientations(_:)":                      true,
	"navigationControllerPreferredInterfaceOrientationForPresentation(_:)": true,
	"navigationControllerSupportedInterfaceOrientations(_:)":               true,
	"scrollViewDidEndDecelerating(_:)":                                     true,
	"scrollViewDidEndDragging(_:willDecelerate:)":                          true,
	"scrollViewDidScroll(_:)":                                              true,
	"scrollViewDidScrollToTop(_:)":                                         true,
	"scrollViewWillBeginDragging(_:)":                                      true,
	"scrollViewWillEndDragging(_:withVelocity:targetContentOffset:)":       true,
	"viewForZooming(in:)":                                                  true,
	"windowShouldClose(_:)":                                                true,
	"windowWillReturnUndoManager(_:)":                                      true,
}

func isKnownDelegateMethod(d *declContext) bool {
	return delegateMethodNames[d.entity.Name] && d.entity.HasAttribute(index.AttrObjC)
}

// isPreviewProvider drops live-preview providers; the IDE instantiates them.
func isPreviewProvider(d *declContext) bool {
	return d.entity.HasRelated(index.PreviewProviderUSR)
}

// inspectableAttrs mark storage wired up by interface-builder tooling.
var inspectableAttrs = []string{
	index.AttrIBOutlet,
	index.AttrIBInspectable,
	index.AttrGKInspectable,
}

// hasExternallyWiredStorage drops outlet-style properties with an explicit
// accessor or observer; the tooling reads and writes them outside source.
func hasExternallyWiredStorage(d *declContext) bool {
	wired := false
	for _, attr := range inspectableAttrs {
		if d.entity.HasAttribute(attr) {
			wired = true
			break
		}
	}
	if !wired {
		return false
	}
	for i := range d.entity.Children {
		child := &d.entity.Children[i]
		if index.IsObserverKind(child.Kind) {
			return true
		}
		if index.IsAccessorKind(child.Kind) && !child.Implicit {
			return true
		}
	}
	return false
}
