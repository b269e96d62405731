package runtime

import "strings"

// Equal is deep structural equality. It is type-strict: Integer 1 and
// Decimal 1.0 are different values.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case IntegerValue:
		return av.Val == b.(IntegerValue).Val
	case DecimalValue:
		return av.Val == b.(DecimalValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NilValue:
		return true
	case *ListValue:
		bv := b.(*ListValue)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *SetValue:
		bv := b.(*SetValue)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for _, elem := range av.Elements {
			if !bv.Contains(elem) {
				return false
			}
		}
		return true
	case *DictValue:
		bv := b.(*DictValue)
		if len(av.Entries) != len(bv.Entries) {
			return false
		}
		for _, entry := range av.Entries {
			other, ok := bv.Lookup(entry.Key)
			if !ok || !Equal(entry.Value, other) {
				return false
			}
		}
		return true
	case *FunctionValue:
		return av == b.(*FunctionValue)
	case *BuiltinFunctionValue:
		return av.Name == b.(*BuiltinFunctionValue).Name
	case *PartialFunctionValue:
		bv := b.(*PartialFunctionValue)
		if av == bv {
			return true
		}
		if !Equal(av.Target, bv.Target) || len(av.BoundArgs) != len(bv.BoundArgs) {
			return false
		}
		for i := range av.BoundArgs {
			if !Equal(av.BoundArgs[i], bv.BoundArgs[i]) {
				return false
			}
		}
		return true
	case *ErrorValue:
		return av.Message == b.(*ErrorValue).Message
	default:
		return false
	}
}

// kindRank orders kinds for canonical Set and Dict ordering.
func kindRank(v Value) int {
	switch v.Kind() {
	case KindInteger:
		return 0
	case KindDecimal:
		return 1
	case KindString:
		return 2
	case KindBoolean:
		return 3
	case KindNil:
		return 4
	case KindList:
		return 5
	case KindSet:
		return 6
	case KindDict:
		return 7
	case KindFunction, KindBuiltinFunction, KindPartialFunction:
		return 8
	default:
		return 9
	}
}

// Compare is the canonical total order: rank by kind, then by value.
// Callables share one rank and compare as equal.
func Compare(a, b Value) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch av := a.(type) {
	case IntegerValue:
		bv := b.(IntegerValue)
		switch {
		case av.Val < bv.Val:
			return -1
		case av.Val > bv.Val:
			return 1
		}
		return 0
	case DecimalValue:
		bv := b.(DecimalValue)
		switch {
		case av.Val < bv.Val:
			return -1
		case av.Val > bv.Val:
			return 1
		}
		return 0
	case StringValue:
		return strings.Compare(av.Val, b.(StringValue).Val)
	case BoolValue:
		bv := b.(BoolValue)
		if av.Val == bv.Val {
			return 0
		}
		if !av.Val {
			return -1
		}
		return 1
	case *ListValue:
		return compareSequences(av.Elements, b.(*ListValue).Elements)
	case *SetValue:
		return compareSequences(av.Elements, b.(*SetValue).Elements)
	case *DictValue:
		bv := b.(*DictValue)
		for i := 0; i < len(av.Entries) && i < len(bv.Entries); i++ {
			if c := Compare(av.Entries[i].Key, bv.Entries[i].Key); c != 0 {
				return c
			}
			if c := Compare(av.Entries[i].Value, bv.Entries[i].Value); c != 0 {
				return c
			}
		}
		return cmpInt(len(av.Entries), len(bv.Entries))
	case *ErrorValue:
		return strings.Compare(av.Message, b.(*ErrorValue).Message)
	default:
		return 0
	}
}

func compareSequences(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
