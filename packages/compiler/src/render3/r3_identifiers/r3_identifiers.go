package r3_identifiers

import (
	"ngc-ir/packages/compiler/src/output"
)

// CORE is the module every runtime instruction is imported from
const CORE = "@angular/core"

func ref(name string) *output.ExternalReference {
	return &output.ExternalReference{ModuleName: CORE, Name: name}
}

// Instructions
var (
	NamespaceHTML   = ref("ɵɵnamespaceHTML")
	NamespaceMathML = ref("ɵɵnamespaceMathML")
	NamespaceSVG    = ref("ɵɵnamespaceSVG")

	Element      = ref("ɵɵelement")
	ElementStart = ref("ɵɵelementStart")
	ElementEnd   = ref("ɵɵelementEnd")

	ElementContainer      = ref("ɵɵelementContainer")
	ElementContainerStart = ref("ɵɵelementContainerStart")
	ElementContainerEnd   = ref("ɵɵelementContainerEnd")

	DomElement               = ref("ɵɵdomElement")
	DomElementStart          = ref("ɵɵdomElementStart")
	DomElementEnd            = ref("ɵɵdomElementEnd")
	DomElementContainer      = ref("ɵɵdomElementContainer")
	DomElementContainerStart = ref("ɵɵdomElementContainerStart")
	DomElementContainerEnd   = ref("ɵɵdomElementContainerEnd")
	DomTemplate              = ref("ɵɵdomTemplate")
	DomListener              = ref("ɵɵdomListener")
	DomProperty              = ref("ɵɵdomProperty")
	AriaProperty             = ref("ɵɵariaProperty")

	Advance = ref("ɵɵadvance")

	Attribute = ref("ɵɵattribute")
	Property  = ref("ɵɵproperty")
	ClassProp = ref("ɵɵclassProp")
	ClassMap  = ref("ɵɵclassMap")
	StyleProp = ref("ɵɵstyleProp")
	StyleMap  = ref("ɵɵstyleMap")

	TwoWayProperty   = ref("ɵɵtwoWayProperty")
	TwoWayBindingSet = ref("ɵɵtwoWayBindingSet")
	TwoWayListener   = ref("ɵɵtwoWayListener")

	Interpolate  = ref("ɵɵinterpolate")
	Interpolate1 = ref("ɵɵinterpolate1")
	Interpolate2 = ref("ɵɵinterpolate2")
	Interpolate3 = ref("ɵɵinterpolate3")
	Interpolate4 = ref("ɵɵinterpolate4")
	Interpolate5 = ref("ɵɵinterpolate5")
	Interpolate6 = ref("ɵɵinterpolate6")
	Interpolate7 = ref("ɵɵinterpolate7")
	Interpolate8 = ref("ɵɵinterpolate8")
	InterpolateV = ref("ɵɵinterpolateV")

	TextInterpolate  = ref("ɵɵtextInterpolate")
	TextInterpolate1 = ref("ɵɵtextInterpolate1")
	TextInterpolate2 = ref("ɵɵtextInterpolate2")
	TextInterpolate3 = ref("ɵɵtextInterpolate3")
	TextInterpolate4 = ref("ɵɵtextInterpolate4")
	TextInterpolate5 = ref("ɵɵtextInterpolate5")
	TextInterpolate6 = ref("ɵɵtextInterpolate6")
	TextInterpolate7 = ref("ɵɵtextInterpolate7")
	TextInterpolate8 = ref("ɵɵtextInterpolate8")
	TextInterpolateV = ref("ɵɵtextInterpolateV")

	NextContext    = ref("ɵɵnextContext")
	ResetView      = ref("ɵɵresetView")
	RestoreView    = ref("ɵɵrestoreView")
	GetCurrentView = ref("ɵɵgetCurrentView")
	Reference      = ref("ɵɵreference")

	TemplateCreate          = ref("ɵɵtemplate")
	ConditionalCreate       = ref("ɵɵconditionalCreate")
	ConditionalBranchCreate = ref("ɵɵconditionalBranchCreate")
	Conditional             = ref("ɵɵconditional")

	Repeater                   = ref("ɵɵrepeater")
	RepeaterCreate             = ref("ɵɵrepeaterCreate")
	RepeaterTrackByIndex       = ref("ɵɵrepeaterTrackByIndex")
	RepeaterTrackByIdentity    = ref("ɵɵrepeaterTrackByIdentity")
	ComponentInstance          = ref("ɵɵcomponentInstance")
	Text                       = ref("ɵɵtext")
	EnableBindings             = ref("ɵɵenableBindings")
	DisableBindings            = ref("ɵɵdisableBindings")
	Listener                   = ref("ɵɵlistener")
	Pipe                       = ref("ɵɵpipe")
	Projection                 = ref("ɵɵprojection")
	ProjectionDef              = ref("ɵɵprojectionDef")
	DeclareLet                 = ref("ɵɵdeclareLet")
	StoreLet                   = ref("ɵɵstoreLet")
	ReadContextLet             = ref("ɵɵreadContextLet")
	AttachSourceLocations      = ref("ɵɵattachSourceLocations")
	ResolveWindow              = ref("ɵɵresolveWindow")
	ResolveDocument            = ref("ɵɵresolveDocument")
	ResolveBody                = ref("ɵɵresolveBody")
	TemplateRefExtractor       = ref("ɵɵtemplateRefExtractor")
	DeferEnableTimerScheduling = ref("ɵɵdeferEnableTimerScheduling")

	Defer                      = ref("ɵɵdefer")
	DeferWhen                  = ref("ɵɵdeferWhen")
	DeferOnIdle                = ref("ɵɵdeferOnIdle")
	DeferOnImmediate           = ref("ɵɵdeferOnImmediate")
	DeferOnTimer               = ref("ɵɵdeferOnTimer")
	DeferOnHover               = ref("ɵɵdeferOnHover")
	DeferOnInteraction         = ref("ɵɵdeferOnInteraction")
	DeferOnViewport            = ref("ɵɵdeferOnViewport")
	DeferPrefetchWhen          = ref("ɵɵdeferPrefetchWhen")
	DeferPrefetchOnIdle        = ref("ɵɵdeferPrefetchOnIdle")
	DeferPrefetchOnImmediate   = ref("ɵɵdeferPrefetchOnImmediate")
	DeferPrefetchOnTimer       = ref("ɵɵdeferPrefetchOnTimer")
	DeferPrefetchOnHover       = ref("ɵɵdeferPrefetchOnHover")
	DeferPrefetchOnInteraction = ref("ɵɵdeferPrefetchOnInteraction")
	DeferPrefetchOnViewport    = ref("ɵɵdeferPrefetchOnViewport")
	DeferHydrateWhen           = ref("ɵɵdeferHydrateWhen")
	DeferHydrateNever          = ref("ɵɵdeferHydrateNever")
	DeferHydrateOnIdle         = ref("ɵɵdeferHydrateOnIdle")
	DeferHydrateOnImmediate    = ref("ɵɵdeferHydrateOnImmediate")
	DeferHydrateOnTimer        = ref("ɵɵdeferHydrateOnTimer")
	DeferHydrateOnHover        = ref("ɵɵdeferHydrateOnHover")
	DeferHydrateOnInteraction  = ref("ɵɵdeferHydrateOnInteraction")
	DeferHydrateOnViewport     = ref("ɵɵdeferHydrateOnViewport")

	PureFunction0 = ref("ɵɵpureFunction0")
	PureFunction1 = ref("ɵɵpureFunction1")
	PureFunction2 = ref("ɵɵpureFunction2")
	PureFunction3 = ref("ɵɵpureFunction3")
	PureFunction4 = ref("ɵɵpureFunction4")
	PureFunction5 = ref("ɵɵpureFunction5")
	PureFunction6 = ref("ɵɵpureFunction6")
	PureFunction7 = ref("ɵɵpureFunction7")
	PureFunction8 = ref("ɵɵpureFunction8")
	PureFunctionV = ref("ɵɵpureFunctionV")

	PipeBind1 = ref("ɵɵpipeBind1")
	PipeBind2 = ref("ɵɵpipeBind2")
	PipeBind3 = ref("ɵɵpipeBind3")
	PipeBind4 = ref("ɵɵpipeBind4")
	PipeBindV = ref("ɵɵpipeBindV")

	I18n            = ref("ɵɵi18n")
	I18nAttributes  = ref("ɵɵi18nAttributes")
	I18nExp         = ref("ɵɵi18nExp")
	I18nStart       = ref("ɵɵi18nStart")
	I18nEnd         = ref("ɵɵi18nEnd")
	I18nApply       = ref("ɵɵi18nApply")
	I18nPostprocess = ref("ɵɵi18nPostprocess")

	SanitizeHtml             = ref("ɵɵsanitizeHtml")
	SanitizeStyle            = ref("ɵɵsanitizeStyle")
	SanitizeResourceUrl      = ref("ɵɵsanitizeResourceUrl")
	SanitizeScript           = ref("ɵɵsanitizeScript")
	SanitizeUrl              = ref("ɵɵsanitizeUrl")
	SanitizeUrlOrResourceUrl = ref("ɵɵsanitizeUrlOrResourceUrl")
	TrustConstantHtml        = ref("ɵɵtrustConstantHtml")
	TrustConstantResourceUrl = ref("ɵɵtrustConstantResourceUrl")
	ValidateIframeAttribute  = ref("ɵɵvalidateIframeAttribute")
)
