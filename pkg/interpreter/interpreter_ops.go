package interpreter

import (
	"tinyc/interpreter-go/pkg/runtime"
)

// applyBinaryOperator requires both operands to carry the same type.
func applyBinaryOperator(op string, left, right runtime.Value, line int) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.BoolValue:
		if r, ok := right.(runtime.BoolValue); ok {
			return boolOperation(op, l.Val, r.Val, line)
		}
	case runtime.IntValue:
		if r, ok := right.(runtime.IntValue); ok {
			return intOperation(op, l.Val, r.Val, line)
		}
	case runtime.FloatValue:
		if r, ok := right.(runtime.FloatValue); ok {
			return floatOperation(op, l.Val, r.Val, line)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return stringOperation(op, l.Val, r.Val, line)
		}
	}
	return nil, typeError(line, "Type mismatch: %s %s %s", runtime.TypeOf(left), op, runtime.TypeOf(right))
}

func boolOperation(op string, a, b bool, line int) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: a == b}, nil
	case "!=":
		return runtime.BoolValue{Val: a != b}, nil
	case "&&":
		return runtime.BoolValue{Val: a && b}, nil
	case "||":
		return runtime.BoolValue{Val: a || b}, nil
	default:
		return nil, typeError(line, "Invalid operator '%s' for boolean.", op)
	}
}

func intOperation(op string, a, b int64, line int) (runtime.Value, error) {
	switch op {
	case "+":
		return wrapInt(a + b), nil
	case "-":
		return wrapInt(a - b), nil
	case "*":
		return wrapInt(a * b), nil
	case "/":
		if b == 0 {
			return nil, runtimeFailure(line, "Division by zero.")
		}
		return wrapInt(a / b), nil
	}
	if cmp, ok := compare(op, a, b); ok {
		return runtime.BoolValue{Val: cmp}, nil
	}
	return nil, typeError(line, "Invalid operator '%s' for int.", op)
}

// wrapInt truncates an integer result to 32 bits with two's complement wrap.
func wrapInt(v int64) runtime.IntValue {
	return runtime.IntValue{Val: int64(int32(v))}
}

func floatOperation(op string, a, b float64, line int) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: a + b}, nil
	case "-":
		return runtime.FloatValue{Val: a - b}, nil
	case "*":
		return runtime.FloatValue{Val: a * b}, nil
	case "/":
		if b == 0 {
			return nil, runtimeFailure(line, "Division by zero.")
		}
		return runtime.FloatValue{Val: a / b}, nil
	}
	if cmp, ok := compare(op, a, b); ok {
		return runtime.BoolValue{Val: cmp}, nil
	}
	return nil, typeError(line, "Invalid operator '%s' for float.", op)
}

func stringOperation(op string, a, b string, line int) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.StringValue{Val: a + b}, nil
	case "==":
		return runtime.BoolValue{Val: a == b}, nil
	default:
		return nil, typeError(line, "Invalid operator '%s' for string.", op)
	}
}

func compare[T int64 | float64](op string, a, b T) (bool, bool) {
	switch op {
	case "==":
		return a == b, true
	case "!=":
		return a != b, true
	case "<":
		return a < b, true
	case ">":
		return a > b, true
	case "<=":
		return a <= b, true
	case ">=":
		return a >= b, true
	default:
		return false, false
	}
}

// isComparisonOperator reports operators whose result is bool.
func isComparisonOperator(op string) bool {
	switch op {
	case "<", ">", "<=", ">=", "==", "!=", "&&", "||":
		return true
	default:
		return false
	}
}

func isArithmeticOperator(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	default:
		return false
	}
}

// truthy applies the condition rule shared by if and while.
func truthy(val runtime.Value) (bool, bool) {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val, true
	case runtime.IntValue:
		return v.Val != 0, true
	default:
		return false, false
	}
}
