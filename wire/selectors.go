package wire

import (
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/types/optional"
)

// Exclude names components (and, in the full NDNx schema, component
// ranges bounded by "Any" markers) that must not appear at the matched
// position. Only direct component exclusion is implemented here; range
// exclusion is left to the codec layer's contract per spec.md §3.2's note
// that "selector semantics are delegated to the codec layer's contract" —
// MatchesName below does not enforce Exclude at all, matching that
// delegation.
type Exclude struct {
	Components []enc.Component
}

// Selectors narrows which Data an Interest will accept (spec.md §3.2).
type Selectors struct {
	MinSuffixComponents      optional.Optional[int]
	MaxSuffixComponents      optional.Optional[int]
	PublisherPublicKeyDigest []byte
	Exclude                  *Exclude
	ChildSelector            int
	AnswerOriginKind         int
	Scope                    optional.Optional[int]
}

func (s *Selectors) encodingLength() int {
	n := 0
	if v, ok := s.MinSuffixComponents.Get(); ok {
		n += uintFieldLen(tlvMinSuffix, uint64(v))
	}
	if v, ok := s.MaxSuffixComponents.Get(); ok {
		n += uintFieldLen(tlvMaxSuffix, uint64(v))
	}
	if len(s.PublisherPublicKeyDigest) > 0 {
		n += bytesFieldLen(tlvPublisherKeyDigest, s.PublisherPublicKeyDigest)
	}
	if s.Exclude != nil {
		n += excludeLen(s.Exclude)
	}
	if s.ChildSelector != 0 {
		n += uintFieldLen(tlvChildSelector, uint64(s.ChildSelector))
	}
	if s.AnswerOriginKind != 0 {
		n += uintFieldLen(tlvAnswerOriginKind, uint64(s.AnswerOriginKind))
	}
	if v, ok := s.Scope.Get(); ok {
		n += uintFieldLen(tlvScope, uint64(v))
	}
	return n
}

func (s *Selectors) EncodingLength() int {
	inner := s.encodingLength()
	return tlvSelectors.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

func (s *Selectors) EncodeInto(buf enc.Buffer) int {
	inner := s.encodingLength()
	p1 := tlvSelectors.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	if v, ok := s.MinSuffixComponents.Get(); ok {
		pos += encodeUintField(buf[pos:], tlvMinSuffix, uint64(v))
	}
	if v, ok := s.MaxSuffixComponents.Get(); ok {
		pos += encodeUintField(buf[pos:], tlvMaxSuffix, uint64(v))
	}
	if len(s.PublisherPublicKeyDigest) > 0 {
		pos += encodeBytesField(buf[pos:], tlvPublisherKeyDigest, s.PublisherPublicKeyDigest)
	}
	if s.Exclude != nil {
		pos += encodeExclude(buf[pos:], s.Exclude)
	}
	if s.ChildSelector != 0 {
		pos += encodeUintField(buf[pos:], tlvChildSelector, uint64(s.ChildSelector))
	}
	if s.AnswerOriginKind != 0 {
		pos += encodeUintField(buf[pos:], tlvAnswerOriginKind, uint64(s.AnswerOriginKind))
	}
	if v, ok := s.Scope.Get(); ok {
		pos += encodeUintField(buf[pos:], tlvScope, uint64(v))
	}
	return pos
}

func excludeLen(ex *Exclude) int {
	inner := 0
	for _, c := range ex.Components {
		inner += bytesFieldLen(tlvExcludeComponent, c.Val)
	}
	return tlvExclude.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

func encodeExclude(buf enc.Buffer, ex *Exclude) int {
	inner := 0
	for _, c := range ex.Components {
		inner += bytesFieldLen(tlvExcludeComponent, c.Val)
	}
	p1 := tlvExclude.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	for _, c := range ex.Components {
		pos += encodeBytesField(buf[pos:], tlvExcludeComponent, c.Val)
	}
	return pos
}

// parseExclude decodes an Exclude from the inner bytes of its TLV wrapper.
func parseExclude(inner enc.Buffer) (*Exclude, bool) {
	ex := &Exclude{}
	pos := 0
	for pos < len(inner) {
		typ, val, used, ok := parseField(inner[pos:])
		if !ok || typ != tlvExcludeComponent {
			return nil, false
		}
		ex.Components = append(ex.Components, enc.NewComponent(append([]byte{}, val...)))
		pos += used
	}
	return ex, true
}

// parseSelectors decodes a Selectors from the inner bytes of its TLV wrapper.
func parseSelectors(inner enc.Buffer) (Selectors, bool) {
	var s Selectors
	pos := 0
	for pos < len(inner) {
		typ, val, used, ok := parseField(inner[pos:])
		if !ok {
			return Selectors{}, false
		}
		switch typ {
		case tlvMinSuffix:
			v, ok := parseUintValue(val)
			if !ok {
				return Selectors{}, false
			}
			s.MinSuffixComponents.Set(int(v))
		case tlvMaxSuffix:
			v, ok := parseUintValue(val)
			if !ok {
				return Selectors{}, false
			}
			s.MaxSuffixComponents.Set(int(v))
		case tlvPublisherKeyDigest:
			s.PublisherPublicKeyDigest = append([]byte{}, val...)
		case tlvExclude:
			ex, ok := parseExclude(val)
			if !ok {
				return Selectors{}, false
			}
			s.Exclude = ex
		case tlvChildSelector:
			v, ok := parseUintValue(val)
			if !ok {
				return Selectors{}, false
			}
			s.ChildSelector = int(v)
		case tlvAnswerOriginKind:
			v, ok := parseUintValue(val)
			if !ok {
				return Selectors{}, false
			}
			s.AnswerOriginKind = int(v)
		case tlvScope:
			v, ok := parseUintValue(val)
			if !ok {
				return Selectors{}, false
			}
			s.Scope.Set(int(v))
		default:
			// unknown selector field: skip, matching §7's "unknown
			// inbound packet types are discarded" tolerance extended
			// to unknown fields within a known packet.
		}
		pos += used
	}
	return s, true
}
