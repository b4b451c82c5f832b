package anonymizer

import (
	"fmt"

	"github.com/suyashkumar/dicom/pkg/tag"

	"dicom-deident/internal/identity"
)

// TagStore is the mutable view of a file the transformer works on.
type TagStore interface {
	ReadText(t tag.Tag) (string, bool)
	PutString(t tag.Tag, vr, value string) error
	Remove(t tag.Tag) bool
}

// Apply writes every plan entry and then strips RemovedTags. Nothing is
// persisted here; on error the caller must drop the file.
func Apply(store TagStore, plan []Replacement) error {
	for _, r := range plan {
		if err := store.PutString(r.Tag, r.VR, r.Value); err != nil {
			return fmt.Errorf("%w: could not write %s: %w", identity.ErrIO, r.Tag, err)
		}
	}

	for _, t := range RemovedTags {
		store.Remove(t)
	}

	return nil
}
