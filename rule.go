package morph

// Rule is one declarative copy or merge instruction within a Config. The
// set of rules is closed: the executors dispatch exhaustively over the
// variants below and an unknown rule cannot be expressed.
type Rule interface {
	isRule()
}

// fieldCopy copies one value from a source path to a destination path,
// optionally validated and mapped on the way.
type fieldCopy struct {
	source     string
	dest       string
	validators []Validator
	mapper     Mapper
}

// fieldsCopy is shorthand for one identical-name fieldCopy per name.
type fieldsCopy struct {
	names []string
}

// subtreeCopy copies an entire object, array, or scalar unchanged.
type subtreeCopy struct {
	path string
}

// objectMerge copies all fields of the object found at path into the
// output's root level.
type objectMerge struct {
	path string
}

// arrayReconcile processes an array of objects: per-element rule
// application when transforming, and identifier-based element matching
// when translating two documents.
type arrayReconcile struct {
	path    string
	rules   []Rule
	idField string
}

func (fieldCopy) isRule()      {}
func (fieldsCopy) isRule()     {}
func (subtreeCopy) isRule()    {}
func (objectMerge) isRule()    {}
func (arrayReconcile) isRule() {}

// FieldOption configures a single CopyField rule.
type FieldOption func(*fieldCopy)

// WithValidators appends validators run against the resolved source value,
// in order, before the copy proceeds.
func WithValidators(vs ...Validator) FieldOption {
	return func(fc *fieldCopy) {
		fc.validators = append(fc.validators, vs...)
	}
}

// WithMapper sets the mapper applied to the resolved value before it is
// written to the destination.
func WithMapper(m Mapper) FieldOption {
	return func(fc *fieldCopy) {
		fc.mapper = m
	}
}

// Config is an ordered, immutable list of rules. Builder methods return a
// new Config; every rule list is an explicit append with no hidden sharing,
// so a Config can be branched and reused safely.
//
// Rule order is significant: later rules may overwrite fields written by
// earlier rules, and output field order follows rule application order.
type Config struct {
	rules []Rule
}

// NewConfig returns an empty rule configuration.
func NewConfig() Config {
	return Config{}
}

// with returns a copy of c with the rule appended.
func (c Config) with(r Rule) Config {
	rules := make([]Rule, 0, len(c.rules)+1)
	rules = append(rules, c.rules...)
	rules = append(rules, r)
	return Config{rules: rules}
}

// CopyField appends a rule copying the value at source to dest.
func (c Config) CopyField(source, dest string, opts ...FieldOption) Config {
	fc := fieldCopy{source: source, dest: dest}
	for _, opt := range opts {
		opt(&fc)
	}
	return c.with(fc)
}

// CopyFields appends a rule copying each named top-level field unchanged.
func (c Config) CopyFields(names ...string) Config {
	copied := make([]string, len(names))
	copy(copied, names)
	return c.with(fieldsCopy{names: copied})
}

// CopySubtree appends a rule copying the whole sub-tree at path unchanged.
func (c Config) CopySubtree(path string) Config {
	return c.with(subtreeCopy{path: path})
}

// MergeObject appends a rule copying all fields of the object at path into
// the output's root level.
func (c Config) MergeObject(path string) Config {
	return c.with(objectMerge{path: path})
}

// ReconcileArray appends a rule for the array of objects at path. When
// transforming, each element is rebuilt with the nested config's rules.
// When translating, elements of the base and override arrays are matched
// by equality of idField and merged pairwise.
func (c Config) ReconcileArray(path, idField string, nested Config) Config {
	return c.with(arrayReconcile{path: path, rules: nested.rules, idField: idField})
}

// Len returns the number of rules.
func (c Config) Len() int {
	return len(c.rules)
}
