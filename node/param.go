// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import "github.com/gviegas/ngfx/internal/errs"

// Type identifies the storage kind of a node parameter.
type Type int

// Parameter type tags.
const (
	TypeI32 Type = iota
	TypeU32
	TypeF32
	TypeF64
	TypeBool
	TypeRational
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat4
	TypeStr
	TypeData
	TypeNode
	TypeNodeList
	TypeNodeDict
	TypeSelect
	TypeFlags
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUVec2
	TypeUVec3
	TypeUVec4
)

// Choice names one value of a TypeSelect or one bit of a TypeFlags
// parameter.
type Choice struct {
	Name  string
	Value int
}

// Constraint is a bitmask of parameter constraint flags.
type Constraint uint

// Constraints.
const (
	// NonNull requires a value; the default may not stand in.
	NonNull Constraint = 1 << iota
	// Filepath marks a TypeStr parameter as naming a file.
	Filepath
	// AllowNode lets a scalar/vector slot hold a variable node
	// producing that type instead of a literal.
	AllowNode
	// AllowLiveChange permits writes after construction.
	AllowLiveChange
	// Constructor marks a positional constructor parameter.
	Constructor
	// DotDisplayFieldname renders the parameter as a field in graph
	// dumps.
	DotDisplayFieldname
)

// Param describes one field of a class's opts struct: its wire name,
// type tag, default value, constraints and (for TypeSelect/TypeFlags)
// the set of named choices. UpdateFn is stored with the Param; this
// package has no parameter write path after construction and does not
// call it.
type Param struct {
	Name        string
	Type        Type
	Default     any
	Choices     []Choice
	Constraints Constraint
	// NodeClasses restricts which classes a TypeNode slot accepts;
	// empty means any.
	NodeClasses []Class
	UpdateFn    func(opts any, value any) error
}

// Schema is the ordered parameter list for one Class.
type Schema []Param

// Find returns the Param named name and true, or the zero Param and
// false if no such parameter exists in s.
func (s Schema) Find(name string) (Param, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// schemaTable holds the registered Schema for each Class, populated by
// RegisterSchema.
var schemaTable [classCount]Schema

// RegisterSchema associates a parameter Schema with a Class. Draw-node
// and resource packages call this from an init function alongside
// RegisterClass.
func RegisterSchema(c Class, s Schema) { schemaTable[c] = s }

// SchemaOf returns the registered Schema for c, or nil if none was
// registered.
func SchemaOf(c Class) Schema { return schemaTable[c] }

// ValidateSelect reports whether value names one of the Choices in p.
// It is a helper for class constructors validating a TypeSelect field.
func ValidateSelect(p Param, value string) (int, error) {
	for _, c := range p.Choices {
		if c.Name == value {
			return c.Value, nil
		}
	}
	return 0, newErr(errs.InvalidArg, "value is not one of the declared choices for "+p.Name)
}
