package core

// SecurityContext is the context a bound value is written into. It selects the sanitizer
// applied at runtime.
type SecurityContext int

const (
	SecurityContextNONE SecurityContext = iota
	SecurityContextHTML
	SecurityContextSTYLE
	SecurityContextSCRIPT
	SecurityContextURL
	SecurityContextRESOURCE_URL
)

func (s SecurityContext) String() string {
	switch s {
	case SecurityContextHTML:
		return "HTML"
	case SecurityContextSTYLE:
		return "STYLE"
	case SecurityContextSCRIPT:
		return "SCRIPT"
	case SecurityContextURL:
		return "URL"
	case SecurityContextRESOURCE_URL:
		return "RESOURCE_URL"
	}
	return "NONE"
}

// AttributeMarker separates sections of the flattened attribute arrays stored in the
// component consts.
type AttributeMarker int

const (
	AttributeMarkerNamespaceURI AttributeMarker = iota
	AttributeMarkerClasses
	AttributeMarkerStyles
	AttributeMarkerBindings
	AttributeMarkerTemplate
	AttributeMarkerProjectAs
	AttributeMarkerI18n
)

// RenderFlags are the bits passed to a template function
type RenderFlags int

const (
	RenderFlagsCreate RenderFlags = 1
	RenderFlagsUpdate RenderFlags = 2
)
