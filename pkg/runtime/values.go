package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Primitive type names as they appear in declarations.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeString = "string"
	TypeVoid   = "void"
)

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	// TypeName is the declared-type spelling of the value: a primitive name,
	// or the class name for object references.
	TypeName() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntValue holds a 32-bit integer widened for storage; arithmetic wraps at
// 32 bits.
type IntValue struct {
	Val int64
}

func (IntValue) Kind() Kind       { return KindInt }
func (IntValue) TypeName() string { return TypeInt }
func (v IntValue) String() string { return strconv.FormatInt(v.Val, 10) }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind       { return KindFloat }
func (FloatValue) TypeName() string { return TypeFloat }
// String prints six significant digits, the way a C stream prints a float.
func (v FloatValue) String() string { return strconv.FormatFloat(v.Val, 'g', 6, 64) }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind       { return KindBool }
func (BoolValue) TypeName() string { return TypeBool }
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind       { return KindString }
func (StringValue) TypeName() string { return TypeString }
func (v StringValue) String() string { return v.Val }

type VoidValue struct{}

func (VoidValue) Kind() Kind       { return KindVoid }
func (VoidValue) TypeName() string { return TypeVoid }

// ObjectValue refers to the single shared member record of a class.
type ObjectValue struct {
	Class string
}

func (ObjectValue) Kind() Kind         { return KindObject }
func (v ObjectValue) TypeName() string { return v.Class }

// TypeOf returns the type name of v, or "" when v carries no type yet.
func TypeOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.TypeName()
}

// Printable reports whether v has a textual form for print and scope dumps.
func Printable(v Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind() {
	case KindInt, KindFloat, KindBool, KindString:
		return true
	default:
		return false
	}
}

// Format renders a printable value. Non-printable values yield false.
func Format(v Value) (string, bool) {
	switch val := v.(type) {
	case IntValue:
		return val.String(), true
	case FloatValue:
		return val.String(), true
	case BoolValue:
		return val.String(), true
	case StringValue:
		return val.Val, true
	default:
		return "", false
	}
}

// IsPrimitiveType reports whether name is one of the built-in value types.
func IsPrimitiveType(name string) bool {
	switch name {
	case TypeInt, TypeFloat, TypeBool, TypeString, TypeVoid:
		return true
	default:
		return false
	}
}

// ZeroValue returns the default value for a declared type. Class names yield
// an object reference; the empty type yields nil (no type yet).
func ZeroValue(typeName string) Value {
	switch typeName {
	case "":
		return nil
	case TypeInt:
		return IntValue{}
	case TypeFloat:
		return FloatValue{}
	case TypeBool:
		return BoolValue{}
	case TypeString:
		return StringValue{}
	case TypeVoid:
		return VoidValue{}
	default:
		return ObjectValue{Class: typeName}
	}
}
