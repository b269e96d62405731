package interpreter

import (
	"errors"

	"elf/interpreter-go/pkg/runtime"
)

// asErrorValue converts a host error into a language error value.
func asErrorValue(err error) *runtime.ErrorValue {
	var errVal *runtime.ErrorValue
	if errors.As(err, &errVal) {
		return errVal
	}
	return &runtime.ErrorValue{Message: err.Error()}
}

func unexpectedArgument(name string, args ...runtime.Value) *runtime.ErrorValue {
	msg := "Unexpected argument: " + name + "("
	for idx, arg := range args {
		if idx > 0 {
			msg += ", "
		}
		msg += runtime.TypeName(arg)
	}
	return &runtime.ErrorValue{Message: msg + ")"}
}

func arityError(expected, got int) *runtime.ErrorValue {
	return runtime.NewError("Function expects %d arguments, got %d", expected, got)
}
