// Package i18n translates validation failure messages produced by the
// fluentval engine.
//
// Rules attach translation keys and values to their failures (via
// WithTranslationKey or the built-in steps); a Translator loaded with one or
// more language catalogs rewrites those messages for a requested language.
// Catalogs are plain YAML documents mapping language codes to nested message
// groups, flattened into dotted keys, with {name} placeholders expanded from
// the failure's translation values.
//
// Language negotiation follows BCP 47: MatchLanguage accepts tags such as
// "de-AT" or comma-separated preference lists and picks the best supported
// catalog language, falling back to the configured default.
//
// # Usage
//
//	t, err := i18n.New(
//	    i18n.WithCatalogYAML(catalogYAML),
//	    i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//	    // invalid catalog
//	}
//
//	result, _ := userValidator.Validate(user)
//	localized := t.TranslateResult("de", result)
//
// The Translator is immutable after construction and safe for concurrent use.
package i18n
