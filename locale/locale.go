// Package locale resolves internal error identifiers, named validation
// rule violations or error text codes, into human readable messages for
// a given locale. The dictionary is static configuration loaded once;
// resolution never mutates it, so a single Resolver is safe for
// concurrent use.
package locale

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// DefaultLocale is used when a caller does not supply one.
const DefaultLocale = "en"

//go:embed app_settings.json
var defaultSettings []byte

// dictionary keeps both the key -> message map and the enumeration
// order of the source document. When several rules fail at once the
// emitted messages follow the dictionary order, not the violation
// order, which fixes which message a user sees first.
type dictionary struct {
	keys     []string
	messages map[string]string
}

// Resolver maps rule keys and error text codes to localized messages.
type Resolver struct {
	locales map[string]*dictionary
}

// New builds a Resolver from the embedded default dictionary.
func New() (*Resolver, error) {
	return NewFromJSON(defaultSettings)
}

// MustNew is New, panicking on a malformed embedded dictionary.
func MustNew() *Resolver {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// NewFromJSON builds a Resolver from a locale -> key -> message JSON
// document, preserving each locale's key order.
func NewFromJSON(data []byte) (*Resolver, error) {
	locales, err := parseOrdered(data)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse locale dictionary")
	}
	return &Resolver{locales: locales}, nil
}

// Messages resolves err into an ordered list of localized messages.
// Three shapes are understood:
//
//   - ozzo validation.Errors: every violated rule key present in the
//     dictionary yields its message, in dictionary order
//   - *goerrors.Error carrying a TextCode: a single message
//   - anything else: no messages
//
// Unknown keys are dropped silently, resolution is best effort.
func (r *Resolver) Messages(err error, locales ...string) []string {
	messages := []string{}
	if err == nil {
		return messages
	}

	dict := r.dictionary(locales...)
	if dict == nil {
		return messages
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		violated := map[string]bool{}
		for _, ferr := range verrs {
			if ferr != nil {
				violated[ferr.Error()] = true
			}
		}
		for _, key := range dict.keys {
			if violated[key] {
				messages = append(messages, dict.messages[key])
			}
		}
		return messages
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode != "" {
		if msg, ok := dict.messages[richErr.TextCode]; ok {
			messages = append(messages, msg)
		}
	}

	return messages
}

// Message resolves a single named key, the single-key counterpart of
// Messages.
func (r *Resolver) Message(key string, locales ...string) string {
	dict := r.dictionary(locales...)
	if dict == nil {
		return ""
	}
	return dict.messages[key]
}

func (r *Resolver) dictionary(locales ...string) *dictionary {
	locale := DefaultLocale
	if len(locales) > 0 && locales[0] != "" {
		locale = locales[0]
	}

	if dict, ok := r.locales[locale]; ok {
		return dict
	}
	return r.locales[DefaultLocale]
}

// parseOrdered walks the JSON document token by token so the per-locale
// key order survives decoding; encoding/json maps would lose it.
func parseOrdered(data []byte) (map[string]*dictionary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top level object, got %v", tok)
	}

	locales := map[string]*dictionary{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		locale, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected locale name, got %v", tok)
		}

		dict, err := parseDictionary(dec)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		locales[locale] = dict
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return locales, nil
}

func parseDictionary(dec *json.Decoder) (*dictionary, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	dict := &dictionary{messages: map[string]string{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected message key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		msg, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("key %q: expected message string, got %v", key, tok)
		}

		if _, seen := dict.messages[key]; !seen {
			dict.keys = append(dict.keys, key)
		}
		dict.messages[key] = msg
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return dict, nil
}
