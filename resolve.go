package morph

// Resolve walks the path segments in order and returns the located
// sub-value. It never fails for a well-formed path against any Value
// shape: a missing field, an out-of-bounds index, or an accessor applied
// to a value of the wrong kind all yield an absent Value.
func Resolve(v Value, p Path) Value {
	for _, seg := range p {
		switch seg.Kind {
		case FieldSegment:
			v = v.Field(seg.Name)
		case IndexSegment:
			v = v.At(seg.Index)
		}
		if v.IsAbsent() {
			return Value{}
		}
	}
	return v
}

// Exists reports whether path resolves to any value, including null.
// Inspection mode never fails: a malformed path reports false.
func Exists(v Value, path string) bool {
	p, err := ParsePath(path)
	if err != nil {
		return false
	}
	return !Resolve(v, p).IsAbsent()
}

// Contains is an alias of Exists, matching the inspection-mode reading.
func Contains(v Value, path string) bool {
	return Exists(v, path)
}

// IsNull reports whether path resolves to an explicit JSON null. A missing
// path is not null.
func IsNull(v Value, path string) bool {
	p, err := ParsePath(path)
	if err != nil {
		return false
	}
	return Resolve(v, p).IsNull()
}

// resolveExtract is the extraction-mode resolver. It behaves like Resolve
// except for one additional rule: a field segment applied to an array
// broadcasts the remaining path across the elements, projecting the
// results into a fresh array in element order. Elements where the
// remainder does not resolve are dropped from the projection.
func resolveExtract(v Value, p Path) Value {
	for i, seg := range p {
		switch seg.Kind {
		case FieldSegment:
			if v.kind == KindArray {
				projected := NewArray()
				for _, e := range v.arr {
					r := resolveExtract(e, p[i:])
					if !r.IsAbsent() {
						projected.push(r)
					}
				}
				return projected
			}
			v = v.Field(seg.Name)
		case IndexSegment:
			v = v.At(seg.Index)
		}
		if v.IsAbsent() {
			return Value{}
		}
	}
	return v
}
