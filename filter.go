package morph

import "fmt"

// Only projects an object down to the named top-level fields, preserving
// their relative order from the source. Fields not in keep are dropped;
// names in keep that the object lacks are ignored. Non-object input fails
// with ErrTypeMismatch.
//
// Only is idempotent: filtering an already filtered object with the same
// keep set returns an equal object.
func Only(v Value, keep ...string) (Value, error) {
	if v.kind != KindObject {
		return Value{}, newTypeError("only", "", fmt.Sprintf("expected object, found %s", v.kind))
	}
	keepSet := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		keepSet[name] = struct{}{}
	}
	out := NewObject()
	for _, k := range v.keys {
		if _, ok := keepSet[k]; ok {
			out.setField(k, v.obj[k])
		}
	}
	return out, nil
}
