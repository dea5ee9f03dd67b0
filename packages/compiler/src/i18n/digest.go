package i18n

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ComputeDecimalDigest computes the $localize message id of a message
func ComputeDecimalDigest(message *Message) string {
	var sb strings.Builder
	for _, node := range message.Nodes {
		sb.WriteString(serializeForDigest(node))
	}
	return ComputeMsgID(sb.String(), message.Meaning)
}

// serializeForDigest renders nodes in an xml-like form. ICU switch expressions are left
// out so that renaming a component field does not change the message id.
func serializeForDigest(node Node) string {
	switch n := node.(type) {
	case *Text:
		return n.Value
	case *Container:
		return "[" + joinDigest(n.Children, ", ") + "]"
	case *Icu:
		cases := make([]string, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = c.Key + " {" + serializeForDigest(c.Value) + "}"
		}
		return "{" + n.Type + ", " + strings.Join(cases, ", ") + "}"
	case *TagPlaceholder:
		if n.IsVoid {
			return `<ph tag name="` + n.StartName + `"/>`
		}
		return `<ph tag name="` + n.StartName + `">` + joinDigest(n.Children, ", ") + `</ph name="` + n.CloseName + `">`
	case *Placeholder:
		if n.Value != "" {
			return `<ph name="` + n.Name + `">` + n.Value + `</ph>`
		}
		return `<ph name="` + n.Name + `"/>`
	case *IcuPlaceholder:
		return `<ph icu name="` + n.Name + `">` + serializeForDigest(n.Value) + `</ph>`
	case *BlockPlaceholder:
		return `<ph block name="` + n.StartName + `">` + joinDigest(n.Children, ", ") + `</ph name="` + n.CloseName + `">`
	}
	return ""
}

func joinDigest(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = serializeForDigest(n)
	}
	return strings.Join(parts, sep)
}

// Fingerprint computes the 64 bit fingerprint of a string, following the Closure
// JsMessage id generator.
func Fingerprint(str string) uint64 {
	data := []byte(str)
	hi := hash32(data, 0)
	lo := hash32(data, 102072)
	if hi == 0 && (lo == 0 || lo == 1) {
		hi ^= 0x130f9bef
		lo ^= 0x6b5f56d8
	}
	return uint64(hi)<<32 | uint64(lo)
}

// ComputeMsgID computes a message id from the message text and its meaning
func ComputeMsgID(msg, meaning string) string {
	fp := Fingerprint(msg)
	if meaning != "" {
		fp = fp<<1 | (fp>>63)&1
		fp += Fingerprint(meaning)
	}
	return fmt.Sprintf("%d", fp&0x7fffffffffffffff)
}

func hash32(data []byte, c uint32) uint32 {
	a, b := uint32(0x9e3779b9), uint32(0x9e3779b9)
	length := len(data)
	i := 0
	for ; i+12 <= length; i += 12 {
		a += binary.LittleEndian.Uint32(data[i:])
		b += binary.LittleEndian.Uint32(data[i+4:])
		c += binary.LittleEndian.Uint32(data[i+8:])
		a, b, c = mix(a, b, c)
	}
	c += uint32(length)
	rest := data[i:]
	// The first byte of c is reserved for the length.
	for j, by := range rest {
		switch {
		case j < 4:
			a += uint32(by) << (8 * j)
		case j < 8:
			b += uint32(by) << (8 * (j - 4))
		default:
			c += uint32(by) << (8 * (j - 7))
		}
	}
	_, _, c = mix(a, b, c)
	return c
}

func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15
	return a, b, c
}
