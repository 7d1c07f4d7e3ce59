package wire

import enc "github.com/named-data/ndndface/std/encoding"

// ElementKind identifies which concrete packet type an element decodes
// to, so engine.onElement can branch the way spec.md §4.7.4 describes.
type ElementKind int

const (
	ElementUnknown ElementKind = iota
	ElementInterest
	ElementData
)

// Sniff reports which kind of element begins buf, and the Interest or
// Data it holds if recognized, without requiring the caller to guess
// which Parse* function to call first. Unknown top-level tags return
// ElementUnknown so the caller can discard-and-log per §4.7.4/§7.
func Sniff(buf enc.Buffer) (kind ElementKind, interest *Interest, data *Data, consumed int, ok bool) {
	typ, _, _, ok := parseField(buf)
	if !ok {
		return ElementUnknown, nil, nil, 0, false
	}
	switch typ {
	case tlvInterest:
		it, n, ok := ParseInterest(buf)
		if !ok {
			return ElementUnknown, nil, nil, 0, false
		}
		return ElementInterest, it, nil, n, true
	case tlvData:
		d, n, ok := ParseData(buf)
		if !ok {
			return ElementUnknown, nil, nil, 0, false
		}
		return ElementData, nil, d, n, true
	default:
		// Unknown top-level tag: still need to skip past it so a
		// stream transport can resync on the next element.
		_, _, total, ok := parseField(buf)
		if !ok {
			return ElementUnknown, nil, nil, 0, false
		}
		return ElementUnknown, nil, nil, total, true
	}
}
