package i18n

import (
	"ngc-ir/packages/compiler/src/util"
)

// MessagePlaceholder describes the source text behind a placeholder
type MessagePlaceholder struct {
	Text       string
	SourceSpan *util.ParseSourceSpan
}

// Message is an i18n message attached to an element, attribute or ICU by the front end
type Message struct {
	Nodes []Node
	// Placeholders maps placeholder names to their source text
	Placeholders map[string]MessagePlaceholder
	// PlaceholderToMessage maps ICU placeholder names to the nested ICU message
	PlaceholderToMessage map[string]*Message
	Meaning              string
	Description          string
	CustomID             string
	// ID is the message id; when empty it is computed from the content
	ID string
}

// NewMessage creates a new Message and computes its id when none is given
func NewMessage(nodes []Node, placeholders map[string]MessagePlaceholder, placeholderToMessage map[string]*Message, meaning, description, customID string) *Message {
	if placeholders == nil {
		placeholders = map[string]MessagePlaceholder{}
	}
	if placeholderToMessage == nil {
		placeholderToMessage = map[string]*Message{}
	}
	m := &Message{
		Nodes:                nodes,
		Placeholders:         placeholders,
		PlaceholderToMessage: placeholderToMessage,
		Meaning:              meaning,
		Description:          description,
		CustomID:             customID,
	}
	m.ID = customID
	if m.ID == "" {
		m.ID = ComputeDecimalDigest(m)
	}
	return m
}

// Node is a node of an i18n message
type Node interface {
	GetSourceSpan() *util.ParseSourceSpan
}

// Text is literal message text
type Text struct {
	Value      string
	SourceSpan *util.ParseSourceSpan
}

func (t *Text) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// Container groups nodes, e.g. the body of an ICU case
type Container struct {
	Children   []Node
	SourceSpan *util.ParseSourceSpan
}

func (c *Container) GetSourceSpan() *util.ParseSourceSpan { return c.SourceSpan }

// IcuCase is one case of an ICU expression
type IcuCase struct {
	Key   string
	Value Node
}

// Icu is an ICU expression such as `{count, plural, =0 {none} other {many}}`
type Icu struct {
	Expression string
	Type       string
	Cases      []IcuCase
	// ExpressionPlaceholder is the placeholder name for the switch value, e.g. VAR_PLURAL
	ExpressionPlaceholder string
	SourceSpan            *util.ParseSourceSpan
}

func (i *Icu) GetSourceSpan() *util.ParseSourceSpan { return i.SourceSpan }

// TagPlaceholder wraps an element inside a message
type TagPlaceholder struct {
	Tag        string
	Attrs      map[string]string
	StartName  string
	CloseName  string
	Children   []Node
	IsVoid     bool
	SourceSpan *util.ParseSourceSpan
}

func (t *TagPlaceholder) GetSourceSpan() *util.ParseSourceSpan { return t.SourceSpan }

// Placeholder stands for an interpolated expression
type Placeholder struct {
	Value      string
	Name       string
	SourceSpan *util.ParseSourceSpan
}

func (p *Placeholder) GetSourceSpan() *util.ParseSourceSpan { return p.SourceSpan }

// IcuPlaceholder stands for a nested ICU message
type IcuPlaceholder struct {
	Value      *Icu
	Name       string
	SourceSpan *util.ParseSourceSpan
}

func (p *IcuPlaceholder) GetSourceSpan() *util.ParseSourceSpan { return p.SourceSpan }

// BlockPlaceholder wraps a control flow block inside a message
type BlockPlaceholder struct {
	Name       string
	Parameters []string
	StartName  string
	CloseName  string
	Children   []Node
	SourceSpan *util.ParseSourceSpan
}

func (b *BlockPlaceholder) GetSourceSpan() *util.ParseSourceSpan { return b.SourceSpan }

// I18nMeta is the i18n metadata a front end attaches to a template node: a *Message on the
// node that starts a translated block or attribute, or the Node standing for it inside an
// enclosing message (*TagPlaceholder, *BlockPlaceholder, *Placeholder, *IcuPlaceholder).
type I18nMeta interface{}
