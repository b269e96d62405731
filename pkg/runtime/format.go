package runtime

import (
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`)

// Inspect renders a value the way programs print it. Sets and dictionaries
// are already held in canonical order.
func Inspect(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// FormatDecimal returns the shortest text that parses back to f.
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil, NilValue:
		b.WriteString("nil")
	case IntegerValue:
		b.WriteString(strconv.FormatInt(val.Val, 10))
	case DecimalValue:
		b.WriteString(FormatDecimal(val.Val))
	case StringValue:
		b.WriteByte('"')
		b.WriteString(stringEscaper.Replace(val.Val))
		b.WriteByte('"')
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case *ListValue:
		b.WriteByte('[')
		writeSequence(b, val.Elements)
		b.WriteByte(']')
	case *SetValue:
		b.WriteByte('{')
		writeSequence(b, val.Elements)
		b.WriteByte('}')
	case *DictValue:
		b.WriteString("#{")
		for i, entry := range val.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, entry.Key)
			b.WriteString(": ")
			writeValue(b, entry.Value)
		}
		b.WriteByte('}')
	case *FunctionValue:
		if len(val.Parameters) == 1 && val.Parameters[0] == ComposedParameter {
			b.WriteString("|...| { [closure] }")
			return
		}
		b.WriteByte('|')
		b.WriteString(strings.Join(val.Parameters, ", "))
		b.WriteString("| { [closure] }")
	case *BuiltinFunctionValue:
		b.WriteString("|...| { [builtin] }")
	case *PartialFunctionValue:
		b.WriteString("|...| { [closure] }")
	case *ErrorValue:
		b.WriteString("[Error] ")
		b.WriteString(val.Message)
	}
}

func writeSequence(b *strings.Builder, elements []Value) {
	for i, elem := range elements {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, elem)
	}
}

// Display renders v for string concatenation: strings contribute their raw
// text and everything else its printed form.
func Display(v Value) string {
	if s, ok := v.(StringValue); ok {
		return s.Val
	}
	return Inspect(v)
}
