package host

import (
	"fmt"
	"math"
	"reflect"

	"github.com/signadot/fieldsnap/prop"
)

// Inline reads an inline leaf of kind k from rv.
func Inline(k prop.Kind, rv reflect.Value) (prop.Value, error) {
	switch k {
	case prop.Int64, prop.Enum:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return prop.Of(k, rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := rv.Uint()
			if u > math.MaxInt64 {
				return prop.Value{}, fmt.Errorf("%w: %d overflows Int64", ErrIncompatible, u)
			}
			return prop.Of(k, int64(u))
		}
	case prop.Float64:
		if rv.CanFloat() {
			return prop.Of(k, rv.Float())
		}
	case prop.Bool:
		if rv.Kind() == reflect.Bool {
			return prop.Of(k, rv.Bool())
		}
	default:
		if k.IsExternal() || k.IsContainer() {
			return prop.Value{}, fmt.Errorf("%s is not an inline kind", k)
		}
		return prop.Of(k, rv.Interface())
	}
	return prop.Value{}, fmt.Errorf("%w: cannot read %s as %s", ErrIncompatible, rv.Type(), k)
}

// Store writes the inline value v of kind k into the settable rv.
// Integers that do not fit rv's type are rejected.
func Store(k prop.Kind, v *prop.Value, rv reflect.Value) error {
	switch k {
	case prop.Int64, prop.Enum:
		n := v.Int64()
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if rv.OverflowInt(n) {
				return fmt.Errorf("%w: %d overflows %s", ErrIncompatible, n, rv.Type())
			}
			rv.SetInt(n)
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n < 0 || rv.OverflowUint(uint64(n)) {
				return fmt.Errorf("%w: %d overflows %s", ErrIncompatible, n, rv.Type())
			}
			rv.SetUint(uint64(n))
			return nil
		}
	case prop.Float64:
		if rv.CanFloat() {
			f := v.Float64()
			if !math.IsInf(f, 0) && !math.IsNaN(f) && rv.OverflowFloat(f) {
				return fmt.Errorf("%w: %g overflows %s", ErrIncompatible, f, rv.Type())
			}
			rv.SetFloat(f)
			return nil
		}
	case prop.Bool:
		if rv.Kind() == reflect.Bool {
			rv.SetBool(v.Bool())
			return nil
		}
	default:
		if k.IsExternal() || k.IsContainer() {
			return fmt.Errorf("%s is not an inline kind", k)
		}
		x := reflect.ValueOf(v.Interface(k))
		if x.Type() == rv.Type() {
			rv.Set(x)
			return nil
		}
	}
	return fmt.Errorf("%w: cannot store %s in %s", ErrIncompatible, k, rv.Type())
}
