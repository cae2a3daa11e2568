package search

import "errors"

var (
	// ErrStoreRequired is returned by NewService when no store is given.
	ErrStoreRequired = errors.New("job store required")

	// ErrSynonymsRequired is returned by NewService when no synonym table is given.
	ErrSynonymsRequired = errors.New("synonym table required")

	// ErrGazetteerRequired is returned by NewService when no city list is given.
	ErrGazetteerRequired = errors.New("city gazetteer required")

	// ErrStore wraps every failure of the backing store.
	ErrStore = errors.New("job store failure")
)
