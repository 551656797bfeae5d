package config

// Built-in primitive type names, as rendered in diagnostics and used as
// keys in the implementation registry.
const (
	IntTypeName   = "int"
	FloatTypeName = "float"
	BoolTypeName  = "bool"
	StrTypeName   = "str"
	AnyTypeName   = "any"
)

// Built-in container type names
const (
	VecTypeName    = "Vec"
	SetTypeName    = "Set"
	MapTypeName    = "Map"
	OptionTypeName = "Option"
	ResultTypeName = "Result"
	TaskTypeName   = "Task"
	TupleTypeName  = "tuple"
)

// Built-in interface and method names
const (
	AddableInterfaceName   = "Addable"
	EqInterfaceName        = "Eq"
	OrderInterfaceName     = "Order"
	IndexableInterfaceName = "Indexable"

	AddMethodName   = "add"
	EqMethodName    = "eq"
	LtMethodName    = "lt"
	GtMethodName    = "gt"
	IndexMethodName = "index"

	// SelfTypeVar is the type variable standing for the implementing type
	// inside interface method signatures.
	SelfTypeVar = "Self"
)

// Garbage collector defaults
const (
	DefaultGCThreshold      = 1000
	DefaultGCIntervalMillis = 100
	DefaultLowEfficiency    = 0.1
	DefaultHighEfficiency   = 0.5
	DefaultGrowFactor       = 1.5
	DefaultShrinkFactor     = 0.8
)
