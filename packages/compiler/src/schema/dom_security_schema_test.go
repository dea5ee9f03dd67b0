package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ngc-ir/packages/compiler/src/core"
)

func TestSecurityContextFor(t *testing.T) {
	tests := []struct {
		tag, prop   string
		isAttribute bool
		want        core.SecurityContext
	}{
		{tag: "a", prop: "href", want: core.SecurityContextURL},
		{tag: "A", prop: "HREF", want: core.SecurityContextURL},
		{tag: "iframe", prop: "src", want: core.SecurityContextRESOURCE_URL},
		{tag: "iframe", prop: "srcdoc", want: core.SecurityContextHTML},
		{tag: "div", prop: "innerHTML", want: core.SecurityContextHTML},
		{tag: "div", prop: "innerhtml", isAttribute: true, want: core.SecurityContextHTML},
		{tag: "button", prop: "formaction", isAttribute: true, want: core.SecurityContextURL},
		{tag: "span", prop: "style", want: core.SecurityContextSTYLE},
		{tag: "div", prop: "title", want: core.SecurityContextNONE},
		{tag: "link", prop: "href", want: core.SecurityContextRESOURCE_URL},
	}
	for _, tt := range tests {
		t.Run("should classify "+tt.tag+"|"+tt.prop, func(t *testing.T) {
			require.Equal(t, tt.want, SecurityContextFor(tt.tag, tt.prop, tt.isAttribute))
		})
	}
}

func TestPossibleSecurityContexts(t *testing.T) {
	t.Run("should collect every context of a property", func(t *testing.T) {
		require.Equal(t,
			[]core.SecurityContext{core.SecurityContextURL, core.SecurityContextRESOURCE_URL},
			PossibleSecurityContexts("href", false))
	})

	t.Run("should return NONE for unknown properties", func(t *testing.T) {
		require.Equal(t, []core.SecurityContext{core.SecurityContextNONE}, PossibleSecurityContexts("title", false))
	})
}

func TestIframeAndTrustedTypes(t *testing.T) {
	t.Run("should match iframe attributes case-insensitively", func(t *testing.T) {
		require.True(t, IsIframeSecuritySensitiveAttr("SANDBOX"))
		require.True(t, IsIframeSecuritySensitiveAttr("allowFullscreen"))
		require.False(t, IsIframeSecuritySensitiveAttr("src"))
	})

	t.Run("should recognize trusted types sinks", func(t *testing.T) {
		require.True(t, IsTrustedTypesSink("iframe", "srcdoc"))
		require.True(t, IsTrustedTypesSink("div", "innerHTML"))
		require.True(t, IsTrustedTypesSink("embed", "src"))
		require.False(t, IsTrustedTypesSink("img", "src"))
	})
}
