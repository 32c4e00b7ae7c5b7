package morph

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTreeEqual compares two documents structurally and dumps both on
// mismatch.
func assertTreeEqual(t *testing.T, want, got Value) {
	t.Helper()
	if !Equal(want, got) {
		t.Errorf("document mismatch\nwant:\n%sgot:\n%s",
			spew.Sdump(want.ToAny()), spew.Sdump(got.ToAny()))
	}
}

func TestTransformVenue(t *testing.T) {
	t.Parallel()

	src := MustParse(`{
		"id": 1,
		"name": "Raw Metal Gym",
		"images": {"top": "//x", "background": "//y"}
	}`)

	cfg := NewConfig().
		CopyFields("id").
		CopyField("name", "title").
		CopySubtree("images")

	out, err := Transform(src, cfg)
	require.NoError(t, err)

	assertTreeEqual(t, MustParse(`{
		"id": 1,
		"title": "Raw Metal Gym",
		"images": {"top": "//x", "background": "//y"}
	}`), out)
}

func TestTransformFieldOrderFollowsRules(t *testing.T) {
	t.Parallel()

	// Source order is alphabetical; rule order is not.
	src := MustParse(`{"a": 1, "b": 2, "c": 3}`)
	cfg := NewConfig().
		CopyField("c", "c").
		CopyField("a", "a").
		CopyField("b", "b")

	out, err := Transform(src, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, out.Keys())
}

func TestTransformNestedDestination(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"street": "Main St", "city": "Springfield"}`)
	cfg := NewConfig().
		CopyField("street", "address.street").
		CopyField("city", "address.city")

	out, err := Transform(src, cfg)
	require.NoError(t, err)
	assertTreeEqual(t, MustParse(`{"address": {"street": "Main St", "city": "Springfield"}}`), out)
}

func TestTransformSkipsAbsentSource(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"name": "x"}`)
	cfg := NewConfig().
		CopyField("name", "title").
		CopyField("missing", "gone").
		CopyFields("alsoMissing")

	out, err := Transform(src, cfg)
	require.NoError(t, err)
	assertTreeEqual(t, MustParse(`{"title": "x"}`), out)
}

func TestTransformRequiredValidator(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"name": "x"}`)
	cfg := NewConfig().
		CopyField("name", "title").
		CopyField("missing", "gone", WithValidators(Required))

	_, err := Transform(src, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var me *Error
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 1, me.Rule)
	assert.Equal(t, "missing", me.Path)
}

func TestTransformValidatorFailureAborts(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"name": "", "id": 1}`)
	cfg := NewConfig().
		CopyFields("id").
		CopyField("name", "title", WithValidators(NonEmptyString))

	_, err := Transform(src, cfg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransformValidatorsRunInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(name string) Validator {
		return func(string, Value) error {
			order = append(order, name)
			return nil
		}
	}

	src := MustParse(`{"a": "x"}`)
	cfg := NewConfig().
		CopyField("a", "a", WithValidators(record("first"), record("second")))

	_, err := Transform(src, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTransformMapper(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"top": "//img.example.com/a.png", "plain": "img.example.com/b.png"}`)
	cfg := NewConfig().
		CopyField("top", "top", WithMapper(EnsureScheme("https"))).
		CopyField("plain", "plain", WithMapper(EnsureScheme("https")))

	out, err := Transform(src, cfg)
	require.NoError(t, err)
	assertTreeEqual(t, MustParse(`{
		"top": "https://img.example.com/a.png",
		"plain": "https://img.example.com/b.png"
	}`), out)
}

func TestTransformMapperFailure(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"n": 5}`)
	cfg := NewConfig().CopyField("n", "n", WithMapper(ToLower))

	_, err := Transform(src, cfg)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransformObjectMerge(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"id": 1, "attrs": {"color": "red", "size": "L"}}`)
	cfg := NewConfig().
		CopyFields("id").
		MergeObject("attrs")

	out, err := Transform(src, cfg)
	require.NoError(t, err)
	assertTreeEqual(t, MustParse(`{"id": 1, "color": "red", "size": "L"}`), out)
	assert.Equal(t, []string{"id", "color", "size"}, out.Keys())
}

func TestTransformObjectMergeLastWriteWins(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"id": 1, "attrs": {"id": 99, "color": "red"}}`)
	cfg := NewConfig().
		CopyFields("id").
		MergeObject("attrs")

	out, err := Transform(src, cfg)
	require.NoError(t, err)

	// The merged field overwrote the earlier copy but kept its position.
	assertTreeEqual(t, MustParse(`{"id": 99, "color": "red"}`), out)
	assert.Equal(t, []string{"id", "color"}, out.Keys())
}

func TestTransformObjectMergeTypeMismatch(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"attrs": [1, 2]}`)
	cfg := NewConfig().MergeObject("attrs")

	_, err := Transform(src, cfg)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestTransformArrayReconcile(t *testing.T) {
	t.Parallel()

	src := MustParse(`{
		"features": [
			{"id": 1, "description": "A", "internal": "x"},
			{"id": 2, "description": "B", "internal": "y"}
		]
	}`)
	cfg := NewConfig().
		ReconcileArray("features", "id", NewConfig().CopyFields("id", "description"))

	out, err := Transform(src, cfg)
	require.NoError(t, err)

	// Transform mode rebuilds each element in source order.
	assertTreeEqual(t, MustParse(`{
		"features": [
			{"id": 1, "description": "A"},
			{"id": 2, "description": "B"}
		]
	}`), out)
}

func TestTransformArrayReconcileElementMismatch(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"features": [1, 2]}`)
	cfg := NewConfig().ReconcileArray("features", "id", NewConfig())

	_, err := Transform(src, cfg)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestTransformBadRulePath(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"a": 1}`)
	cfg := NewConfig().CopyField("a..b", "a")

	_, err := Transform(src, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPath)

	var me *Error
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 0, me.Rule)
}

func TestTransformDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	src := MustParse(`{"images": {"top": "//x"}}`)
	cfg := NewConfig().
		CopySubtree("images").
		CopyField("images.top", "images.copy")

	_, err := Transform(src, cfg)
	require.NoError(t, err)

	// The shared sub-tree written by CopySubtree must stay intact even
	// though a later rule wrote beneath the same destination.
	assertTreeEqual(t, MustParse(`{"images": {"top": "//x"}}`), src)
}

func TestConfigBuilderIsImmutable(t *testing.T) {
	t.Parallel()

	base := NewConfig().CopyFields("id")
	withTitle := base.CopyField("name", "title")
	withBrand := base.CopyField("brand", "brand")

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, withTitle.Len())
	assert.Equal(t, 2, withBrand.Len())

	src := MustParse(`{"id": 1, "name": "x", "brand": "y"}`)
	out, err := Transform(src, withTitle)
	require.NoError(t, err)
	assertTreeEqual(t, MustParse(`{"id": 1, "title": "x"}`), out)
}
