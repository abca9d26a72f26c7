// Package value implements the typed values carried by the content tree.
//
// Every variant (Bool, Int, Float, String, List, DivertTarget and
// VariablePointer) is a content.Object, so values can be attached to
// containers like any other leaf.
//
// # Casting
//
// Cast converts between variants. Numbers convert to each other, to Bool and
// to String; strings parse back into numbers; Bool converts to 0 or 1. Lists
// convert through their highest-valued item. Casts between String and Bool,
// and any cast into or out of DivertTarget or VariablePointer other than the
// identity cast, fail with an error matching ErrInvalidCast.
//
//	v, err := value.NewFloat(3.9).Cast(value.TypeInt) // IntValue 3
package value
