package expression_parser

// BindingType is the kind of a bound attribute
type BindingType int

const (
	// BindingTypeProperty is `[prop]="value"`
	BindingTypeProperty BindingType = iota
	// BindingTypeAttribute is `[attr.name]="value"`
	BindingTypeAttribute
	// BindingTypeClass is `[class.name]="cond"`
	BindingTypeClass
	// BindingTypeStyle is `[style.name]="value"`
	BindingTypeStyle
	// BindingTypeTwoWay is `[(prop)]="value"`
	BindingTypeTwoWay
)

// ParsedEventType is the kind of a bound event
type ParsedEventType int

const (
	// ParsedEventTypeRegular is `(event)="handler()"`
	ParsedEventTypeRegular ParsedEventType = iota
	// ParsedEventTypeTwoWay is the event half of `[(prop)]`
	ParsedEventTypeTwoWay
)
