package morph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All operations are pure functions over immutable inputs, so a single
// shared document and config must be safe under concurrent use.
func TestConcurrentOperationsOnSharedValue(t *testing.T) {
	t.Parallel()

	doc := MustParse(`{
		"id": 1,
		"name": "Raw Metal Gym",
		"images": {"top": "//x", "background": "//y"},
		"features": [
			{"id": 1, "description": "A"},
			{"id": 2, "description": "B"}
		]
	}`)
	overrides := MustParse(`{
		"name": "Raw Metal Gym II",
		"features": [{"id": 2, "description": "B2"}]
	}`)

	cfg := NewConfig().
		CopyFields("id").
		CopyField("name", "title", WithValidators(NonEmptyString)).
		CopySubtree("images").
		ReconcileArray("features", "id", NewConfig().CopyFields("id", "description"))

	const workers = 16
	const iterations = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if !Exists(doc, "images.top") {
					errs <- assert.AnError
					return
				}
				if _, err := GetString(doc, "name"); err != nil {
					errs <- err
					return
				}
				if _, err := Transform(doc, cfg); err != nil {
					errs <- err
					return
				}
				if _, err := Translate(doc, overrides, &cfg); err != nil {
					errs <- err
					return
				}
				if _, err := Only(doc, "id", "name"); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// The shared inputs are untouched afterwards.
	assertTreeEqual(t, MustParse(`{
		"id": 1,
		"name": "Raw Metal Gym",
		"images": {"top": "//x", "background": "//y"},
		"features": [
			{"id": 1, "description": "A"},
			{"id": 2, "description": "B"}
		]
	}`), doc)
}
