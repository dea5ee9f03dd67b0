package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingTranslationStrategy selects what happens when a message has no translation
type MissingTranslationStrategy int

const (
	// MissingTranslationStrategyError fails the compilation job
	MissingTranslationStrategyError MissingTranslationStrategy = iota
	// MissingTranslationStrategyWarning records a warning and keeps the source text
	MissingTranslationStrategyWarning
	// MissingTranslationStrategyIgnore silently keeps the source text
	MissingTranslationStrategyIgnore
)

// ParseMissingTranslationStrategy parses "error", "warning" or "ignore"
func ParseMissingTranslationStrategy(s string) (MissingTranslationStrategy, error) {
	switch strings.ToLower(s) {
	case "error":
		return MissingTranslationStrategyError, nil
	case "warning", "":
		return MissingTranslationStrategyWarning, nil
	case "ignore":
		return MissingTranslationStrategyIgnore, nil
	}
	return 0, fmt.Errorf("unknown missing translation strategy %q", s)
}

// MissingTranslationError reports a message without translation under the error strategy
type MissingTranslationError struct {
	ID string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("missing translation for message %q", e.ID)
}

// Translation is the localized form of one message
type Translation struct {
	MessageParts     []string
	PlaceholderNames []string
	// Missing is set when the source text was used because no translation exists
	Missing bool
}

// TranslationBundle holds translated message texts keyed by message id. Translated texts
// refer to placeholders as `{$NAME}`.
type TranslationBundle struct {
	translations map[string]string
	Strategy     MissingTranslationStrategy
}

// NewTranslationBundle creates a new TranslationBundle
func NewTranslationBundle(translations map[string]string, strategy MissingTranslationStrategy) *TranslationBundle {
	return &TranslationBundle{translations: translations, Strategy: strategy}
}

var translationPlaceholderRegexp = regexp.MustCompile(`\{\$([A-Za-z0-9_]+)\}`)

// Translate returns the localized parts of a message. A nil bundle always returns the
// source text.
func (b *TranslationBundle) Translate(message *Message) (*Translation, error) {
	parts, placeholders := SerializeForLocalize(message)
	if b == nil {
		return &Translation{MessageParts: parts, PlaceholderNames: placeholders}, nil
	}
	text, ok := b.translations[message.ID]
	if !ok {
		if b.Strategy == MissingTranslationStrategyError {
			return nil, &MissingTranslationError{ID: message.ID}
		}
		return &Translation{
			MessageParts:     parts,
			PlaceholderNames: placeholders,
			Missing:          b.Strategy == MissingTranslationStrategyWarning,
		}, nil
	}

	known := make(map[string]bool, len(placeholders))
	for _, ph := range placeholders {
		known[ph] = true
	}
	translated := &Translation{MessageParts: []string{}}
	last := 0
	for _, loc := range translationPlaceholderRegexp.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if !known[name] {
			return nil, fmt.Errorf("translation of message %q uses unknown placeholder %q", message.ID, name)
		}
		translated.MessageParts = append(translated.MessageParts, text[last:loc[0]])
		translated.PlaceholderNames = append(translated.PlaceholderNames, name)
		last = loc[1]
	}
	translated.MessageParts = append(translated.MessageParts, text[last:])
	return translated, nil
}
