// Package morph is a declarative JSON manipulation toolkit: path-based
// lookups and typed extraction over an immutable value tree, plus
// rule-driven transformation of one document and translation (deep merge)
// of two documents into a new document.
//
// # Value model
//
// The substrate is Value, a closed variant over object, array, string,
// number, boolean, null, and absent. Null is an explicit JSON null in the
// document; absent is the result of a failed resolution and never
// serializes. Objects preserve field insertion order. Values are
// immutable: every operation builds a fresh tree.
//
//	doc, err := morph.Parse(`{"user":{"name":"John","tags":["a","b"]}}`)
//
// # Paths and extraction
//
// Paths use dot notation with zero-based bracket indexes: "user.name",
// "items[1].name", "[0].id". Inspection never fails; extraction fails with
// typed errors and has non-failing WithDefault variants:
//
//	ok := morph.Exists(doc, "user.name")
//	name, err := morph.GetString(doc, "user.name")
//	age := morph.GetIntWithDefault(doc, "user.age", 0)
//
// A trailing field against an array broadcasts across its elements:
// "items.sale" over [{"sale":true},{"sale":false}] yields [true,false].
//
// # Transformation
//
// A Config is an ordered, immutable list of copy/merge rules built by
// chained appends. Transform interprets it against one source document;
// output field order follows rule order:
//
//	cfg := morph.NewConfig().
//		CopyFields("id").
//		CopyField("name", "title", morph.WithValidators(morph.NonEmptyString)).
//		CopySubtree("images")
//	out, err := morph.Transform(doc, cfg)
//
// # Translation
//
// Translate deep-merges an override document onto a base document with
// override precedence. Arrays of objects named by a ReconcileArray rule
// are matched element-wise by an identifier field instead of by position:
//
//	cfg := morph.NewConfig().ReconcileArray("features", "id", morph.NewConfig())
//	merged, err := morph.Translate(base, overrides, &cfg)
//
// # Errors
//
// Failures wrap the sentinels ErrInvalidPath, ErrPathNotFound,
// ErrTypeMismatch, and ErrValidation in an *Error carrying the operation,
// path, and rule index, so errors.Is works throughout.
//
// All operations are pure functions over immutable inputs and are safe
// for concurrent use on shared Values.
package morph
