package i18n

import "errors"

var (
	// ErrNoCatalog is returned when a translator is built without any catalog.
	ErrNoCatalog = errors.New("no translation catalog provided")

	// ErrInvalidCatalog is returned when a catalog cannot be parsed.
	ErrInvalidCatalog = errors.New("invalid translation catalog")

	// ErrUnknownLanguage is returned when a language tag cannot be parsed.
	ErrUnknownLanguage = errors.New("unknown language")
)
