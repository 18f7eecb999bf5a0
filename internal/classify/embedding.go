package classify

import "github.com/trhprace/intelligence/internal/domain"

// EmbeddingClassifier is the capability interface for the optional
// embedding-based fallback. The system functions fully without one; the
// keyword layers always run first and the fallback is consulted only when
// they yield Other.
type EmbeddingClassifier interface {
	// Available reports whether the model is loaded and usable.
	Available() bool
	// Classify maps an advert to a role. Returning Other means the
	// fallback declined to decide; that answer is discarded.
	Classify(title, description string) (domain.RoleType, error)
}
