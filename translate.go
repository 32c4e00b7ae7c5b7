package morph

import "strconv"

// Translate deep-merges overrides onto base with override precedence and,
// when cfg is non-nil, reshapes the merged document by running Transform
// with the same config. A nil cfg returns the merged document directly.
//
// Merge semantics:
//   - Scalars and nulls: the override value wins, including explicit null.
//   - Objects present in both: merged recursively. Fields only in base are
//     kept, fields only in the override are appended, fields in both
//     recurse.
//   - Arrays of objects targeted by a ReconcileArray rule in cfg: elements
//     are matched across the two arrays by equality of the rule's id
//     field. Matched pairs deep-merge, unmatched base elements are
//     dropped, unmatched override elements are kept, and output order
//     follows the override array.
//   - Any other array: replaced wholesale by the override array.
func Translate(base, overrides Value, cfg *Config) (Value, error) {
	var rules []Rule
	if cfg != nil {
		rules = cfg.rules
	}
	spec, err := buildMergeSpec("translate", rules)
	if err != nil {
		return Value{}, err
	}
	merged := deepMerge(base, overrides, spec)
	if cfg == nil {
		return merged, nil
	}
	return Transform(merged, *cfg)
}

// mergeSpec is a trie over source paths marking where ReconcileArray rules
// apply during a deep merge. A node with a non-empty idField reconciles
// the arrays found at that position; its elem spec applies inside each
// matched element pair, carrying nested reconciliations.
type mergeSpec struct {
	idField string
	elem    *mergeSpec
	fields  map[string]*mergeSpec
}

func buildMergeSpec(op string, rules []Rule) (*mergeSpec, error) {
	root := &mergeSpec{}
	for i, rule := range rules {
		ar, ok := rule.(arrayReconcile)
		if !ok {
			continue
		}
		p, err := ParsePath(ar.path)
		if err != nil {
			return nil, newRuleError(op, i, ar.path, "bad path", err)
		}
		node := root
		for _, seg := range p {
			if seg.Kind != FieldSegment {
				return nil, newRuleError(op, i, ar.path,
					"array index not supported in reconcile path", ErrInvalidPath)
			}
			if node.fields == nil {
				node.fields = map[string]*mergeSpec{}
			}
			child := node.fields[seg.Name]
			if child == nil {
				child = &mergeSpec{}
				node.fields[seg.Name] = child
			}
			node = child
		}
		node.idField = ar.idField
		elem, err := buildMergeSpec(op, ar.rules)
		if err != nil {
			return nil, err
		}
		node.elem = elem
	}
	return root, nil
}

// child returns the spec applying beneath the named field, or nil.
func (s *mergeSpec) child(name string) *mergeSpec {
	if s == nil {
		return nil
	}
	return s.fields[name]
}

func deepMerge(base, override Value, spec *mergeSpec) Value {
	switch {
	case override.IsAbsent():
		return base
	case base.IsAbsent():
		return override
	}

	if base.kind == KindObject && override.kind == KindObject {
		return mergeObjects(base, override, spec)
	}
	if base.kind == KindArray && override.kind == KindArray && spec != nil && spec.idField != "" {
		return reconcileArrays(base, override, spec)
	}
	// Scalars, nulls, kind changes, and arrays without a reconcile rule:
	// the override replaces the base value wholesale.
	return override
}

func mergeObjects(base, override Value, spec *mergeSpec) Value {
	out := NewObject()
	for _, k := range base.keys {
		if ov, ok := override.obj[k]; ok {
			out.setField(k, deepMerge(base.obj[k], ov, spec.child(k)))
		} else {
			out.setField(k, base.obj[k])
		}
	}
	for _, k := range override.keys {
		if _, ok := base.obj[k]; !ok {
			out.setField(k, override.obj[k])
		}
	}
	return out
}

// reconcileArrays matches elements of two arrays of objects by id field
// equality. A lookup index over the base array keeps matching linear.
func reconcileArrays(base, override Value, spec *mergeSpec) Value {
	index := make(map[string]Value, len(base.arr))
	for _, elem := range base.arr {
		id := elem.Field(spec.idField)
		if id.IsAbsent() {
			continue
		}
		index[idKey(id)] = elem
	}

	out := NewArray()
	for _, elem := range override.arr {
		id := elem.Field(spec.idField)
		if !id.IsAbsent() {
			if baseElem, ok := index[idKey(id)]; ok {
				out.push(deepMerge(baseElem, elem, spec.elem))
				continue
			}
		}
		out.push(elem)
	}
	return out
}

// idKey renders an identifier value as a map key, prefixed by kind so
// the number 1 and the string "1" stay distinct.
func idKey(v Value) string {
	switch v.kind {
	case KindString:
		return "s:" + v.str
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	}
	// Composite identifiers are unusual but comparable by their JSON text.
	return "j:" + v.String()
}
