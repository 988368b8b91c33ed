package i18n

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAMLCatalog parses a YAML translation catalog. The top level maps
// language codes to nested message groups; nesting flattens into dotted keys:
//
//	en:
//	  validation:
//	    required: "{property} is required"
//	    min_length: "{property} must be at least {min} characters"
//	de:
//	  validation:
//	    required: "{property} ist erforderlich"
//
// yields keys such as "validation.required" per language.
func ParseYAMLCatalog(content []byte) (map[string]map[string]string, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	catalog := make(map[string]map[string]string)
	for lang, entries := range data {
		nested, ok := entries.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected a map, got %T", ErrInvalidCatalog, lang, entries)
		}
		flat := make(map[string]string)
		if err := flatten("", nested, flat); err != nil {
			return nil, fmt.Errorf("%w: language %q: %w", ErrInvalidCatalog, lang, err)
		}
		catalog[lang] = flat
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}
	return catalog, nil
}

func flatten(prefix string, src map[string]any, dst map[string]string) error {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			dst[full] = v
		case map[string]any:
			if err := flatten(full, v, dst); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected string or map, got %T", full, value)
		}
	}
	return nil
}
