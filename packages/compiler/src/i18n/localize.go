package i18n

import (
	"strings"
)

type localizePiece struct {
	text          string
	isPlaceholder bool
}

// SerializeForLocalize splits a message into the literal parts and placeholder names of a
// `$localize` tagged template. ICU expressions are serialized inline as literal text.
func SerializeForLocalize(message *Message) (messageParts []string, placeholders []string) {
	// The message of an ICU is the ICU text itself.
	if len(message.Nodes) == 1 {
		if icu, ok := message.Nodes[0].(*IcuPlaceholder); ok && icu.Value != nil {
			return []string{SerializeIcuNode(icu.Value)}, nil
		}
	}
	var pieces []localizePiece
	for _, node := range message.Nodes {
		pieces = appendLocalizePieces(pieces, node)
	}
	return joinLocalizePieces(pieces)
}

func appendLocalizePieces(pieces []localizePiece, node Node) []localizePiece {
	switch n := node.(type) {
	case *Text:
		pieces = append(pieces, localizePiece{text: n.Value})
	case *Container:
		for _, child := range n.Children {
			pieces = appendLocalizePieces(pieces, child)
		}
	case *Icu:
		pieces = append(pieces, localizePiece{text: SerializeIcuNode(n)})
	case *TagPlaceholder:
		pieces = append(pieces, localizePiece{text: n.StartName, isPlaceholder: true})
		for _, child := range n.Children {
			pieces = appendLocalizePieces(pieces, child)
		}
		if !n.IsVoid {
			pieces = append(pieces, localizePiece{text: n.CloseName, isPlaceholder: true})
		}
	case *Placeholder:
		pieces = append(pieces, localizePiece{text: n.Name, isPlaceholder: true})
	case *IcuPlaceholder:
		pieces = append(pieces, localizePiece{text: n.Name, isPlaceholder: true})
	case *BlockPlaceholder:
		pieces = append(pieces, localizePiece{text: n.StartName, isPlaceholder: true})
		for _, child := range n.Children {
			pieces = appendLocalizePieces(pieces, child)
		}
		pieces = append(pieces, localizePiece{text: n.CloseName, isPlaceholder: true})
	}
	return pieces
}

// joinLocalizePieces merges adjacent literals so that parts and placeholders alternate,
// starting and ending with a (possibly empty) literal.
func joinLocalizePieces(pieces []localizePiece) ([]string, []string) {
	parts := []string{""}
	var placeholders []string
	for _, piece := range pieces {
		if piece.isPlaceholder {
			placeholders = append(placeholders, piece.text)
			parts = append(parts, "")
			continue
		}
		parts[len(parts)-1] += piece.text
	}
	return parts, placeholders
}

// SerializeIcuNode renders an ICU expression as ICU message text with `{NAME}` placeholders
func SerializeIcuNode(icu *Icu) string {
	var sb strings.Builder
	writeIcuNode(&sb, icu)
	return sb.String()
}

func writeIcuNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Text:
		sb.WriteString(n.Value)
	case *Container:
		for _, child := range n.Children {
			writeIcuNode(sb, child)
		}
	case *Icu:
		sb.WriteString("{" + n.ExpressionPlaceholder + ", " + n.Type + ",")
		for _, c := range n.Cases {
			sb.WriteString(" " + c.Key + " {")
			writeIcuNode(sb, c.Value)
			sb.WriteString("}")
		}
		sb.WriteString("}")
	case *TagPlaceholder:
		sb.WriteString("{" + n.StartName + "}")
		if n.IsVoid {
			return
		}
		for _, child := range n.Children {
			writeIcuNode(sb, child)
		}
		sb.WriteString("{" + n.CloseName + "}")
	case *Placeholder:
		sb.WriteString("{" + n.Name + "}")
	case *IcuPlaceholder:
		sb.WriteString("{" + n.Name + "}")
	case *BlockPlaceholder:
		sb.WriteString("{" + n.StartName + "}")
		for _, child := range n.Children {
			writeIcuNode(sb, child)
		}
		sb.WriteString("{" + n.CloseName + "}")
	}
}

// SerializeI18nHead builds the `meaning|description@@id` metadata block of a message
func SerializeI18nHead(message *Message) string {
	var sb strings.Builder
	if message.Meaning != "" {
		sb.WriteString(message.Meaning + "|")
	}
	sb.WriteString(message.Description)
	if message.CustomID != "" {
		sb.WriteString("@@" + message.CustomID)
	}
	return sb.String()
}
