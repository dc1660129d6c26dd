package domain

import (
	"reflect"
)

// Merge overlays the non-nil pointer fields of patch onto base.
func Merge[F any](base, patch F) F {
	out := base
	ov := reflect.ValueOf(&out).Elem()
	pv := reflect.ValueOf(patch)
	for i := 0; i < pv.NumField(); i++ {
		f := pv.Field(i)
		if f.Kind() == reflect.Ptr && !f.IsNil() {
			ov.Field(i).Set(f)
		}
	}
	return out
}

// Changed keeps the non-nil fields of current whose value differs from initial.
func Changed[F any](initial, current F) F {
	var out F
	ov := reflect.ValueOf(&out).Elem()
	iv := reflect.ValueOf(initial)
	cv := reflect.ValueOf(current)
	for i := 0; i < cv.NumField(); i++ {
		c := cv.Field(i)
		if c.Kind() != reflect.Ptr || c.IsNil() {
			continue
		}
		in := iv.Field(i)
		if !in.IsNil() && reflect.DeepEqual(in.Elem().Interface(), c.Elem().Interface()) {
			continue
		}
		ov.Field(i).Set(c)
	}
	return out
}

// IsEmpty reports whether no pointer field of f is set.
func IsEmpty[F any](f F) bool {
	v := reflect.ValueOf(f)
	for i := 0; i < v.NumField(); i++ {
		if fv := v.Field(i); fv.Kind() == reflect.Ptr && !fv.IsNil() {
			return false
		}
	}
	return true
}
