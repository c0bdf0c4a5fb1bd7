package attr

// entry is one row of the registry table.
// shape is empty for attributes that take no value.
type entry struct {
	ident       string
	name        string
	description string
	shape       string
}

// Value shapes shared by several attributes.
const (
	shapeSizeBytes      = "Integer (size in bytes)"
	shapeAlignmentBytes = "Integer (alignment in bytes)"
	shapeAllocSize      = "Two integers (element size and number of elements)"
)

// table is indexed by Attribute. Keyed elements keep each row bound to its
// constant regardless of source order; a missing row is caught by checkTable.
var table = [numAttributes]entry{
	AlwaysInline: {"AlwaysInline", "alwaysinline", "Suggests that the function should always be inlined.", ""},
	InlineHint:   {"InlineHint", "inlinehint", "Suggests that the function should be inlined if possible.", ""},
	NoReturn:     {"NoReturn", "noreturn", "Indicates that the function does not return.", ""},
	NoUnwind:     {"NoUnwind", "nounwind", "Indicates that the function does not unwind the stack.", ""},
	ReadNone:     {"ReadNone", "readnone", "Indicates that the function does not read or write memory.", ""},
	ReadOnly:     {"ReadOnly", "readonly", "Indicates that the function only reads memory but does not write.", ""},
	WriteOnly:    {"WriteOnly", "writeonly", "Indicates that the function only writes memory but does not read.", ""},
	Speculatable: {"Speculatable", "speculatable", "Indicates that the function can be speculatively executed.", ""},
	MinSize:      {"MinSize", "minsize", "Suggests optimizing for minimum code size.", ""},
	OptSize:      {"OptSize", "optsize", "Suggests optimizing for code size.", ""},
	NoInline:     {"NoInline", "noinline", "Suggests that the function should not be inlined.", ""},

	// Parameter and return value attributes.
	NoCapture:             {"NoCapture", "nocapture", "Indicates that the pointer argument is not captured.", ""},
	NonNull:               {"NonNull", "nonnull", "Indicates that the pointer argument is not null.", ""},
	Dereferenceable:       {"Dereferenceable", "dereferenceable", "Indicates that the pointer argument is dereferenceable to the given size.", shapeSizeBytes},
	DereferenceableOrNull: {"DereferenceableOrNull", "dereferenceable_or_null", "Indicates that the pointer argument is either null or dereferenceable to the given size.", shapeSizeBytes},
	SRet:                  {"SRet", "sret", "Indicates that the argument is a structure return pointer.", ""},
	Align:                 {"Align", "align", "Specifies the alignment of the parameter or return value.", shapeAlignmentBytes},
	AllocSize:             {"AllocSize", "allocsize", "Indicates the allocation size for memory allocation functions.", shapeAllocSize},
	AllocAlign:            {"AllocAlign", "allocalign", "Specifies the alignment of memory allocation.", shapeAlignmentBytes},
	Returned:              {"Returned", "returned", "Indicates that the argument is also a return value.", ""},
	ZeroExt:               {"ZeroExt", "zeroext", "Indicates that the integer argument should be zero-extended.", ""},
	SignExt:               {"SignExt", "signext", "Indicates that the integer argument should be sign-extended.", ""},

	Cold:      {"Cold", "cold", "Indicates that the function is unlikely to be executed.", ""},
	Hot:       {"Hot", "hot", "Indicates that the function is likely to be executed.", ""},
	NoBuiltin: {"NoBuiltin", "nobuiltin", "Indicates that the function is not a built-in function.", ""},
	NoRedZone: {"NoRedZone", "noredzone", "Indicates that the function does not use a red zone.", ""},

	// Sanitizers.
	SanitizeAddress:   {"SanitizeAddress", "sanitize_address", "Enables AddressSanitizer for the function.", ""},
	SanitizeThread:    {"SanitizeThread", "sanitize_thread", "Enables ThreadSanitizer for the function.", ""},
	SanitizeMemory:    {"SanitizeMemory", "sanitize_memory", "Enables MemorySanitizer for the function.", ""},
	SanitizeHWAddress: {"SanitizeHWAddress", "sanitize_hwaddress", "Enables HardwareAddressSanitizer for the function.", ""},

	StrictFP:             {"StrictFP", "strictfp", "Enables strict floating-point semantics.", ""},
	StackProtector:       {"StackProtector", "ssp", "Enables stack protection.", ""},
	StackProtectorReq:    {"StackProtectorReq", "sspreq", "Requires stack protection.", ""},
	StackProtectorStrong: {"StackProtectorStrong", "sspstrong", "Enables strong stack protection.", ""},
	UWTable:              {"UWTable", "uwtable", "Indicates that the function should have an unwind table.", ""},
	ReturnsTwice:         {"ReturnsTwice", "returns_twice", "Indicates that the function may return more than once.", ""},

	// Swift calling convention.
	SwiftSelf:  {"SwiftSelf", "swiftself", "Used in Swift to indicate the self parameter.", ""},
	SwiftError: {"SwiftError", "swifterror", "Used in Swift to indicate an error parameter.", ""},
}
