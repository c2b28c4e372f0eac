package ir

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// ToAny returns a plain Go view of n built from nil, string, int64, float64,
// bool, []any and map[string]any.  Placeholders become nil.
func ToAny(n *Node) any {
	switch n.typ {
	case NullType, OverlayType:
		return nil
	case StringType:
		return n.str
	case IntType:
		return n.i
	case FloatType:
		return n.f
	case BoolType:
		return n.b
	case ArrayType, ListType:
		res := make([]any, len(n.values))
		for i, v := range n.values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		return ObjectToAny(n.obj)
	default:
		panic("type")
	}
}

func ObjectToAny(o *Object) map[string]any {
	res := make(map[string]any, o.Len())
	for k, v := range o.All() {
		res[k.Name] = ToAny(v)
	}
	return res
}

// FromAny converts a plain Go value to a node.  Sequences become Arrays and
// maps with string keys become Objects with their keys sorted.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", x, err)
		}
		return FromFloat(f), nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, n)
		}
		return FromObject(obj), nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrTypeMismatch, u)
		}
		return FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		vs := make([]*Node, rv.Len())
		for i := range vs {
			n, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromAny(m)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromReflect(rv.Elem())
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	}
	return nil, fmt.Errorf("%w: cannot convert %s", ErrTypeMismatch, rv.Type())
}
