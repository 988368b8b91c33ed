package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluentval"
)

// DefaultLanguage is used when no language matches the request.
const DefaultLanguage = "en"

// Translator rewrites validation failure messages from their translation keys
// using per-language catalogs. Catalogs are immutable after construction, so
// a Translator is safe for concurrent use.
type Translator struct {
	// translations maps language code -> dotted key -> message template.
	translations map[string]map[string]string
	defaultLang  string
	langs        []string
	tags         []language.Tag
	matcher      language.Matcher
}

// Option configures a Translator during construction.
type Option func(*Translator) error

// WithCatalog merges a pre-built catalog of language -> dotted key -> template.
func WithCatalog(catalog map[string]map[string]string) Option {
	return func(t *Translator) error {
		for lang, entries := range catalog {
			t.merge(lang, entries)
		}
		return nil
	}
}

// WithCatalogYAML merges a YAML catalog; see ParseYAMLCatalog for the format.
func WithCatalogYAML(content []byte) Option {
	return func(t *Translator) error {
		catalog, err := ParseYAMLCatalog(content)
		if err != nil {
			return err
		}
		for lang, entries := range catalog {
			t.merge(lang, entries)
		}
		return nil
	}
}

// WithDefaultLanguage sets the language used when no supported language
// matches the requested one.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) error {
		if _, err := language.Parse(lang); err != nil {
			return errors.Join(ErrUnknownLanguage, err)
		}
		t.defaultLang = lang
		return nil
	}
}

// New builds a Translator from one or more catalog options.
func New(opts ...Option) (*Translator, error) {
	t := &Translator{
		translations: make(map[string]map[string]string),
		defaultLang:  DefaultLanguage,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if len(t.translations) == 0 {
		return nil, ErrNoCatalog
	}

	// Deterministic matcher: default language first, the rest sorted.
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	if _, ok := t.translations[t.defaultLang]; ok {
		langs = append([]string{t.defaultLang}, langs...)
	}

	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, errors.Join(ErrUnknownLanguage, fmt.Errorf("catalog language %q", lang))
		}
		t.langs = append(t.langs, lang)
		t.tags = append(t.tags, tag)
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

func (t *Translator) merge(lang string, entries map[string]string) {
	dst, ok := t.translations[lang]
	if !ok {
		dst = make(map[string]string)
		t.translations[lang] = dst
	}
	for key, template := range entries {
		dst[key] = template
	}
}

// SupportedLanguages returns the catalog languages, default language first.
func (t *Translator) SupportedLanguages() []string {
	out := make([]string, len(t.langs))
	copy(out, t.langs)
	return out
}

// MatchLanguage negotiates the best supported language for a BCP 47 request
// such as "de-AT" or "en-US,fr;q=0.8". Unknown requests fall back to the
// default language.
func (t *Translator) MatchLanguage(requested string) string {
	var desired []language.Tag
	for _, part := range strings.Split(requested, ",") {
		part = strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if part == "" {
			continue
		}
		if tag, err := language.Parse(part); err == nil {
			desired = append(desired, tag)
		}
	}
	if len(desired) == 0 {
		return t.defaultLang
	}
	_, index, conf := t.matcher.Match(desired...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[index]
}

// T translates a dotted key for the given language, expanding {name}
// placeholders from values. A missing key falls back to the default
// language's entry, then to the key itself.
func (t *Translator) T(lang, key string, values map[string]any) string {
	template, ok := t.lookup(t.MatchLanguage(lang), key)
	if !ok {
		template, ok = t.lookup(t.defaultLang, key)
	}
	if !ok {
		return key
	}

	for name, value := range values {
		template = strings.ReplaceAll(template, "{"+name+"}", fmt.Sprint(value))
	}
	return template
}

// HasTranslation reports whether a key exists for a supported language.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(t.MatchLanguage(lang), key)
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	entries, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	template, ok := entries[key]
	return template, ok
}

// TranslateFailures rewrites the Message of every failure carrying a
// translation key. Failures without a key keep their original message.
// The input slice is not mutated.
func (t *Translator) TranslateFailures(lang string, failures []fluentval.Failure) []fluentval.Failure {
	out := make([]fluentval.Failure, len(failures))
	copy(out, failures)
	for i := range out {
		if out[i].TranslationKey == "" {
			continue
		}
		out[i].Message = t.T(lang, out[i].TranslationKey, out[i].TranslationValues)
	}
	return out
}

// TranslateResult returns a copy of the result with translated messages,
// preserving failure order.
func (t *Translator) TranslateResult(lang string, result fluentval.Result) fluentval.Result {
	var out fluentval.Result
	out.Append(t.TranslateFailures(lang, result.Failures())...)
	return out
}
