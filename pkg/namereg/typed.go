package namereg

import "reflect"

// GetAs looks up key and asserts the value to T.
//
// It returns a *NotFoundError when the key is unbound and a *TypeError when
// the bound value is not a T.
//
//	mux, err := namereg.GetAs[*MUX](r, "MUX.default")
func GetAs[T any](r *Registrar, key string) (T, error) {
	var zero T
	v, err := r.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{
			Key:  key,
			Want: reflect.TypeFor[T]().String(),
			Got:  typeName(v),
		}
	}
	return t, nil
}

// As is GetAs on the process-wide registrar.
func As[T any](key string) (T, error) {
	return GetAs[T](Default(), key)
}
