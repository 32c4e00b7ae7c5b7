package morph

import "fmt"

// Transform applies the config's rules in order against src and returns
// the freshly built output document.
//
// Processing is fail-fast: the first rule whose path is malformed, whose
// validator rejects its input, or whose source kind does not match the
// rule's expectation aborts the whole transformation with an error naming
// the rule index and path. An aborted transform yields no usable result.
//
// Copy rules whose source path does not resolve are skipped silently
// unless one of their validators rejects absence (see Required).
func Transform(src Value, cfg Config) (Value, error) {
	out, err := applyRules("transform", src, cfg.rules)
	if err != nil {
		return Value{}, err
	}
	return out, nil
}

// applyRules builds a fresh object by running rules in order.
func applyRules(op string, src Value, rules []Rule) (Value, error) {
	out := NewObject()
	for i, rule := range rules {
		var err error
		switch r := rule.(type) {
		case fieldCopy:
			out, err = applyFieldCopy(op, src, out, i, r)
		case fieldsCopy:
			for _, name := range r.names {
				out, err = applyFieldCopy(op, src, out, i, fieldCopy{source: name, dest: name})
				if err != nil {
					break
				}
			}
		case subtreeCopy:
			out, err = applySubtreeCopy(op, src, out, i, r)
		case objectMerge:
			out, err = applyObjectMerge(op, src, out, i, r)
		case arrayReconcile:
			out, err = applyArrayReconcile(op, src, out, i, r)
		}
		if err != nil {
			return Value{}, err
		}
	}
	return out, nil
}

func applyFieldCopy(op string, src, out Value, rule int, fc fieldCopy) (Value, error) {
	srcPath, err := ParsePath(fc.source)
	if err != nil {
		return Value{}, newRuleError(op, rule, fc.source, "bad source path", err)
	}
	dstPath, err := ParsePath(fc.dest)
	if err != nil {
		return Value{}, newRuleError(op, rule, fc.dest, "bad destination path", err)
	}

	resolved := Resolve(src, srcPath)

	// Validators see the absent value on a failed resolution, which is how
	// Required turns a silent skip into a hard failure.
	for _, validate := range fc.validators {
		if err := validate(fc.source, resolved); err != nil {
			return Value{}, newRuleError(op, rule, fc.source, err.Error(), ErrValidation)
		}
	}
	if resolved.IsAbsent() {
		return out, nil
	}

	if fc.mapper != nil {
		resolved, err = fc.mapper(resolved)
		if err != nil {
			return Value{}, newRuleError(op, rule, fc.source, err.Error(), ErrValidation)
		}
	}
	return writePath(op, out, rule, dstPath, resolved)
}

func applySubtreeCopy(op string, src, out Value, rule int, sc subtreeCopy) (Value, error) {
	p, err := ParsePath(sc.path)
	if err != nil {
		return Value{}, newRuleError(op, rule, sc.path, "bad path", err)
	}
	resolved := Resolve(src, p)
	if resolved.IsAbsent() {
		return out, nil
	}
	return writePath(op, out, rule, p, resolved)
}

func applyObjectMerge(op string, src, out Value, rule int, om objectMerge) (Value, error) {
	p, err := ParsePath(om.path)
	if err != nil {
		return Value{}, newRuleError(op, rule, om.path, "bad path", err)
	}
	resolved := Resolve(src, p)
	if resolved.IsAbsent() {
		return out, nil
	}
	if resolved.kind != KindObject {
		return Value{}, newRuleError(op, rule, om.path,
			fmt.Sprintf("expected object, found %s", resolved.kind), ErrTypeMismatch)
	}
	merged := shallowCopyObject(out)
	for _, k := range resolved.keys {
		merged.setField(k, resolved.obj[k])
	}
	return merged, nil
}

func applyArrayReconcile(op string, src, out Value, rule int, ar arrayReconcile) (Value, error) {
	p, err := ParsePath(ar.path)
	if err != nil {
		return Value{}, newRuleError(op, rule, ar.path, "bad path", err)
	}
	resolved := Resolve(src, p)
	if resolved.IsAbsent() {
		return out, nil
	}
	if resolved.kind != KindArray {
		return Value{}, newRuleError(op, rule, ar.path,
			fmt.Sprintf("expected array, found %s", resolved.kind), ErrTypeMismatch)
	}

	rebuilt := NewArray()
	for i, elem := range resolved.arr {
		if elem.kind != KindObject {
			return Value{}, newRuleError(op, rule, ar.path,
				fmt.Sprintf("element %d is %s, expected object", i, elem.kind), ErrTypeMismatch)
		}
		transformed, err := applyRules(op, elem, ar.rules)
		if err != nil {
			return Value{}, err
		}
		rebuilt.push(transformed)
	}
	return writePath(op, out, rule, p, rebuilt)
}

// writePath writes val at p within dst, creating intermediate objects as
// needed. Objects along the path are copied, never mutated, so sub-trees
// shared with a source document stay intact. Destination paths address
// object fields only; index segments are rejected.
func writePath(op string, dst Value, rule int, p Path, val Value) (Value, error) {
	if len(p) == 0 {
		return val, nil
	}
	seg := p[0]
	if seg.Kind != FieldSegment {
		return Value{}, newRuleError(op, rule, p.String(),
			"array index not supported in destination path", ErrInvalidPath)
	}

	var parent Value
	if dst.kind == KindObject {
		parent = shallowCopyObject(dst)
	} else {
		parent = NewObject()
	}
	child, err := writePath(op, parent.Field(seg.Name), rule, p[1:], val)
	if err != nil {
		return Value{}, err
	}
	parent.setField(seg.Name, child)
	return parent, nil
}

// shallowCopyObject clones an object's key order and field map one level
// deep. Field values remain shared.
func shallowCopyObject(v Value) Value {
	out := Value{
		kind: KindObject,
		keys: make([]string, len(v.keys)),
		obj:  make(map[string]Value, len(v.obj)),
	}
	copy(out.keys, v.keys)
	for k, val := range v.obj {
		out.obj[k] = val
	}
	return out
}
