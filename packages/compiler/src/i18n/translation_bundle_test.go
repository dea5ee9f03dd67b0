package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// greetingMessage is `Hello <b>{{name}}</b>!`
func greetingMessage(id string) *Message {
	return NewMessage([]Node{
		&Text{Value: "Hello "},
		&TagPlaceholder{
			Tag:       "b",
			StartName: "START_BOLD_TEXT",
			CloseName: "CLOSE_BOLD_TEXT",
			Children:  []Node{&Placeholder{Value: "name", Name: "INTERPOLATION"}},
		},
		&Text{Value: "!"},
	}, nil, nil, "", "", id)
}

func TestSerializeForLocalize(t *testing.T) {
	t.Run("should alternate literal parts and placeholders", func(t *testing.T) {
		parts, placeholders := SerializeForLocalize(greetingMessage("greeting"))
		require.Equal(t, []string{"Hello ", "", "", "!"}, parts)
		require.Equal(t, []string{"START_BOLD_TEXT", "INTERPOLATION", "CLOSE_BOLD_TEXT"}, placeholders)
	})

	t.Run("should serialize an ICU message inline", func(t *testing.T) {
		icu := &Icu{
			Expression:            "count",
			Type:                  "plural",
			ExpressionPlaceholder: "VAR_PLURAL",
			Cases: []IcuCase{
				{Key: "=0", Value: &Container{Children: []Node{&Text{Value: "none"}}}},
				{Key: "other", Value: &Container{Children: []Node{&Placeholder{Name: "INTERPOLATION"}, &Text{Value: " items"}}}},
			},
		}
		message := NewMessage([]Node{&IcuPlaceholder{Value: icu, Name: "ICU"}}, nil, nil, "", "", "")
		parts, placeholders := SerializeForLocalize(message)
		require.Equal(t, []string{"{VAR_PLURAL, plural, =0 {none} other {{INTERPOLATION} items}}"}, parts)
		require.Empty(t, placeholders)
	})

	t.Run("should skip the close placeholder of a void tag", func(t *testing.T) {
		message := NewMessage([]Node{
			&Text{Value: "a"},
			&TagPlaceholder{Tag: "br", StartName: "LINE_BREAK", IsVoid: true},
			&Text{Value: "b"},
		}, nil, nil, "", "", "")
		parts, placeholders := SerializeForLocalize(message)
		require.Equal(t, []string{"a", "b"}, parts)
		require.Equal(t, []string{"LINE_BREAK"}, placeholders)
	})
}

func TestSerializeI18nHead(t *testing.T) {
	tests := []struct {
		name                         string
		meaning, description, custom string
		want                         string
	}{
		{name: "description only", description: "greeting", want: "greeting"},
		{name: "meaning and description", meaning: "site", description: "greeting", want: "site|greeting"},
		{name: "custom id", meaning: "site", description: "greeting", custom: "hello", want: "site|greeting@@hello"},
	}
	for _, tt := range tests {
		t.Run("should serialize "+tt.name, func(t *testing.T) {
			message := NewMessage([]Node{&Text{Value: "x"}}, nil, nil, tt.meaning, tt.description, tt.custom)
			require.Equal(t, tt.want, SerializeI18nHead(message))
		})
	}
}

func TestComputeMsgID(t *testing.T) {
	t.Run("should be deterministic", func(t *testing.T) {
		require.Equal(t, ComputeMsgID("Hello", ""), ComputeMsgID("Hello", ""))
		require.Equal(t, greetingMessage("").ID, greetingMessage("").ID)
	})

	t.Run("should depend on the meaning", func(t *testing.T) {
		require.NotEqual(t, ComputeMsgID("Hello", ""), ComputeMsgID("Hello", "site"))
	})

	t.Run("should prefer the custom id", func(t *testing.T) {
		require.Equal(t, "greeting", greetingMessage("greeting").ID)
		require.NotEmpty(t, greetingMessage("").ID)
	})
}

func TestParseMissingTranslationStrategy(t *testing.T) {
	tests := map[string]MissingTranslationStrategy{
		"error":   MissingTranslationStrategyError,
		"Warning": MissingTranslationStrategyWarning,
		"":        MissingTranslationStrategyWarning,
		"ignore":  MissingTranslationStrategyIgnore,
	}
	for input, want := range tests {
		got, err := ParseMissingTranslationStrategy(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	t.Run("should reject unknown strategies", func(t *testing.T) {
		_, err := ParseMissingTranslationStrategy("panic")
		require.ErrorContains(t, err, `unknown missing translation strategy "panic"`)
	})
}

func TestTranslate(t *testing.T) {
	t.Run("should return the source text without a bundle", func(t *testing.T) {
		var bundle *TranslationBundle
		translation, err := bundle.Translate(greetingMessage("greeting"))
		require.NoError(t, err)
		require.Equal(t, []string{"Hello ", "", "", "!"}, translation.MessageParts)
		require.False(t, translation.Missing)
	})

	t.Run("should fail on a missing translation with the error strategy", func(t *testing.T) {
		bundle := NewTranslationBundle(map[string]string{}, MissingTranslationStrategyError)
		_, err := bundle.Translate(greetingMessage("greeting"))
		var missing *MissingTranslationError
		require.True(t, errors.As(err, &missing))
		require.Equal(t, "greeting", missing.ID)
	})

	t.Run("should mark a missing translation with the warning strategy", func(t *testing.T) {
		bundle := NewTranslationBundle(map[string]string{}, MissingTranslationStrategyWarning)
		translation, err := bundle.Translate(greetingMessage("greeting"))
		require.NoError(t, err)
		require.True(t, translation.Missing)
		require.Equal(t, []string{"START_BOLD_TEXT", "INTERPOLATION", "CLOSE_BOLD_TEXT"}, translation.PlaceholderNames)
	})

	t.Run("should keep the source text silently with the ignore strategy", func(t *testing.T) {
		bundle := NewTranslationBundle(nil, MissingTranslationStrategyIgnore)
		translation, err := bundle.Translate(greetingMessage("greeting"))
		require.NoError(t, err)
		require.False(t, translation.Missing)
		require.Equal(t, []string{"Hello ", "", "", "!"}, translation.MessageParts)
	})

	t.Run("should reorder placeholders as the translation does", func(t *testing.T) {
		bundle := NewTranslationBundle(map[string]string{
			"greeting": "{$START_BOLD_TEXT}{$INTERPOLATION}{$CLOSE_BOLD_TEXT}, bonjour !",
		}, MissingTranslationStrategyError)
		translation, err := bundle.Translate(greetingMessage("greeting"))
		require.NoError(t, err)
		require.Equal(t, []string{"", "", "", ", bonjour !"}, translation.MessageParts)
		require.Equal(t, []string{"START_BOLD_TEXT", "INTERPOLATION", "CLOSE_BOLD_TEXT"}, translation.PlaceholderNames)
	})

	t.Run("should reject unknown placeholders", func(t *testing.T) {
		bundle := NewTranslationBundle(map[string]string{"greeting": "Salut {$NAME}"}, MissingTranslationStrategyError)
		_, err := bundle.Translate(greetingMessage("greeting"))
		require.ErrorContains(t, err, `unknown placeholder "NAME"`)
	})
}
