package phases

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty string", value: "", want: nil},
		{name: "several declarations", value: "width:100px;height:200px;opacity:0", want: []string{"width", "100px", "height", "200px", "opacity", "0"}},
		{name: "a trailing semicolon", value: "color: red;", want: []string{"color", "red"}},
		{name: "camel case names", value: "fontSize: 12px", want: []string{"font-size", "12px"}},
		{
			name:  "separators inside quotes",
			value: `background: url("a;b.png"); color: red`,
			want:  []string{"background", `url("a;b.png")`, "color", "red"},
		},
		{
			name:  "separators inside parentheses",
			value: "background-image: url(data:image/png;base64,AAA)",
			want:  []string{"background-image", "url(data:image/png;base64,AAA)"},
		},
	}
	for _, tt := range tests {
		t.Run("should parse "+tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseStyle(tt.value)); diff != "" {
				t.Errorf("parseStyle() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHyphenate(t *testing.T) {
	tests := map[string]string{
		"width":            "width",
		"backgroundColor":  "background-color",
		"WebkitTransition": "webkit-transition",
		"border-top":       "border-top",
	}
	for input, want := range tests {
		if diff := cmp.Diff(want, hyphenate(input)); diff != "" {
			t.Errorf("hyphenate(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		name         string
		wantProperty string
		wantUnit     string
	}{
		{name: "width", wantProperty: "width"},
		{name: "width.px", wantProperty: "width", wantUnit: "px"},
		{name: "height!important", wantProperty: "height"},
		{name: "margin.em!important", wantProperty: "margin", wantUnit: "em"},
	}
	for _, tt := range tests {
		t.Run("should split "+tt.name, func(t *testing.T) {
			property, unit := parseProperty(tt.name)
			if diff := cmp.Diff([]string{tt.wantProperty, tt.wantUnit}, []string{property, unit}); diff != "" {
				t.Errorf("parseProperty() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
