package config

// ScenarioFileExtensions are all recognized scenario file extensions
var ScenarioFileExtensions = []string{".yaml", ".yml", ".tower"}

// Built-in type names
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	StringTypeName = "String"
	BoolTypeName   = "Bool"
	UnitTypeName   = "Unit"
	ListTypeName   = "List"
	MapTypeName    = "Map"
)

// BuiltinTypeNames are registered in every scenario's type registry.
var BuiltinTypeNames = []string{
	IntTypeName,
	FloatTypeName,
	StringTypeName,
	BoolTypeName,
	UnitTypeName,
	ListTypeName,
	MapTypeName,
}

// ErrorTypeName is what the distinguished error type prints as.
const ErrorTypeName = "<error>"

// Batch resolution defaults
const (
	DefaultBatchConcurrency = 8
	MaxBatchConcurrency     = 256
)

// Tracer and metric namespaces
const (
	TracerName      = "tower.resolve"
	MetricNamespace = "tower"
)
