package index

import "strings"

// Entity kinds are hierarchically namespaced: "decl." prefixed kinds define a
// symbol, "ref." prefixed kinds mention one defined elsewhere.
const (
	declPrefix = "decl."
	refPrefix  = "ref."

	KindClass            = "decl.class"
	KindStruct           = "decl.struct"
	KindEnum             = "decl.enum"
	KindEnumElement      = "decl.enumelement"
	KindProtocol         = "decl.protocol"
	KindTypealias        = "decl.typealias"
	KindAssociatedType   = "decl.associatedtype"
	KindGenericTypeParam = "decl.generic_type_param"

	KindFunctionFree   = "decl.function.free"
	KindMethodInstance = "decl.function.method.instance"
	KindMethodStatic   = "decl.function.method.static"
	KindMethodClass    = "decl.function.method.class"
	KindConstructor    = "decl.function.constructor"
	KindDestructor     = "decl.function.destructor"
	KindSubscript      = "decl.function.subscript"

	KindVarInstance = "decl.var.instance"
	KindVarStatic   = "decl.var.static"
	KindVarClass    = "decl.var.class"
	KindVarGlobal   = "decl.var.global"

	// Extensions come in one sub-kind per extended type; all share the prefix.
	KindExtensionPrefix = "decl.extension"

	// Accessors ride with their owning property and are never independently
	// reportable.
	accessorPrefix  = "decl.function.accessor."
	KindAccessorGet = "decl.function.accessor.getter"
	KindAccessorSet = "decl.function.accessor.setter"
	KindWillSet     = "decl.function.accessor.willset"
	KindDidSet      = "decl.function.accessor.didset"

	// Test-discovery markers emitted by the indexer for test runners.
	KindTestCandidate = "decl.test.candidate"
	KindTestSuite     = "decl.test.suite"
)

// Declaration attributes reported on entities.
const (
	AttrOverride          = "attr.override"
	AttrMain              = "attr.main"
	AttrUIApplicationMain = "attr.uiapplicationmain"
	AttrNSApplicationMain = "attr.nsapplicationmain"
	AttrObjC              = "attr.objc"
	AttrIBOutlet          = "attr.iboutlet"
	AttrIBInspectable     = "attr.ibinspectable"
	AttrGKInspectable     = "attr.gkinspectable"
)

// Well-known contract identifiers matched against related-declaration USRs.
const (
	// CodingKeyUSR identifies the standard coding-key protocol; an enum named
	// CodingKeys conforming to it is serialization-framework synthesis.
	CodingKeyUSR = "s:s9CodingKeyP"

	// PreviewProviderUSR identifies the UI-framework live-preview contract.
	PreviewProviderUSR = "s:7SwiftUI15PreviewProviderP"
)

// IsDeclarationKind reports whether the kind defines a symbol.
func IsDeclarationKind(kind string) bool {
	return strings.HasPrefix(kind, declPrefix)
}

// IsReferenceKind reports whether the kind mentions a symbol defined elsewhere.
func IsReferenceKind(kind string) bool {
	return strings.HasPrefix(kind, refPrefix)
}

// IsAccessorKind reports whether the kind is a property accessor sub-kind.
func IsAccessorKind(kind string) bool {
	return strings.HasPrefix(kind, accessorPrefix)
}

// IsObserverKind reports whether the kind is a willSet/didSet observer.
func IsObserverKind(kind string) bool {
	return kind == KindWillSet || kind == KindDidSet
}

// nonReportableKinds cannot be reliably judged unused from reference counting
// alone and are never reported.
var nonReportableKinds = map[string]bool{
	KindEnumElement:      true,
	KindConstructor:      true,
	KindDestructor:       true,
	KindSubscript:        true,
	KindGenericTypeParam: true,
	KindTestCandidate:    true,
	KindTestSuite:        true,
}

// IsReportableKind reports whether a declaration of this kind may appear in
// the violation set.
func IsReportableKind(kind string) bool {
	if nonReportableKinds[kind] {
		return false
	}
	return !strings.HasPrefix(kind, KindExtensionPrefix)
}

// typeKinds are the declaration kinds considered when the whole-type
// exemption pass follows references through nested type declarations.
var typeKinds = map[string]bool{
	KindClass:     true,
	KindStruct:    true,
	KindEnum:      true,
	KindProtocol:  true,
	KindTypealias: true,
}

// IsTypeKind reports whether the kind declares a nominal type or type alias.
func IsTypeKind(kind string) bool {
	return typeKinds[kind]
}

// Reference sub-kinds for nominal types and type aliases.
const (
	RefClass     = "ref.class"
	RefStruct    = "ref.struct"
	RefEnum      = "ref.enum"
	RefProtocol  = "ref.protocol"
	RefTypealias = "ref.typealias"
)

var typeRefKinds = map[string]bool{
	RefClass:     true,
	RefStruct:    true,
	RefEnum:      true,
	RefProtocol:  true,
	RefTypealias: true,
}

// IsTypeReferenceKind reports whether the kind references a nominal type or
// type alias.
func IsTypeReferenceKind(kind string) bool {
	return typeRefKinds[kind]
}

// IsEnclosingTypeKind reports whether the kind can act as the enclosing type
// of a member declaration for the conformance exemption.
func IsEnclosingTypeKind(kind string) bool {
	return kind == KindProtocol || kind == KindClass
}
