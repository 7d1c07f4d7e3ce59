package wire

import (
	"time"

	enc "github.com/named-data/ndndface/std/encoding"
)

// DefaultInterestLifetime is used when a caller does not supply one
// (spec.md §3.2).
const DefaultInterestLifetime = 4000 * time.Millisecond

// Interest is a request packet naming desired Data (spec.md §3.2).
type Interest struct {
	Name             enc.Name
	Selectors        Selectors
	Nonce            []byte
	InterestLifetime time.Duration
}

// MatchesName reports whether i's name is a prefix of n and the suffix
// length satisfied the Min/MaxSuffixComponents selectors if present.
// Exclude, ChildSelector, AnswerOriginKind and Scope are not enforced
// here: their semantics are delegated to the codec layer's contract, per
// spec.md §3.2.
func (i *Interest) MatchesName(n enc.Name) bool {
	if !i.Name.IsPrefixOf(n) {
		return false
	}
	suffix := n.Len() - i.Name.Len()
	if v, ok := i.Selectors.MinSuffixComponents.Get(); ok && suffix < v {
		return false
	}
	if v, ok := i.Selectors.MaxSuffixComponents.Get(); ok && suffix > v {
		return false
	}
	return true
}

func (i *Interest) lifetimeMillis() uint64 {
	ms := i.InterestLifetime
	if ms <= 0 {
		ms = DefaultInterestLifetime
	}
	return uint64(ms / time.Millisecond)
}

func (i *Interest) innerLength() int {
	n := i.Name.EncodingLength()
	n += i.Selectors.EncodingLength()
	if len(i.Nonce) > 0 {
		n += bytesFieldLen(tlvNonce, i.Nonce)
	}
	n += uintFieldLen(tlvInterestLifetime, i.lifetimeMillis())
	return n
}

// EncodingLength returns the number of bytes Encode will produce.
func (i *Interest) EncodingLength() int {
	inner := i.innerLength()
	return tlvInterest.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

// Encode renders i as a standalone TLV element.
func (i *Interest) Encode() enc.Wire {
	buf := make(enc.Buffer, i.EncodingLength())
	inner := i.innerLength()
	p1 := tlvInterest.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	pos += i.Name.EncodeInto(buf[pos:])
	pos += i.Selectors.EncodeInto(buf[pos:])
	if len(i.Nonce) > 0 {
		pos += encodeBytesField(buf[pos:], tlvNonce, i.Nonce)
	}
	encodeUintField(buf[pos:], tlvInterestLifetime, i.lifetimeMillis())
	return enc.Wire{buf}
}

// ParseInterest decodes an Interest TLV element (including its own type
// wrapper) from the front of buf, returning the number of bytes consumed.
func ParseInterest(buf enc.Buffer) (*Interest, int, bool) {
	typ, body, total, ok := parseField(buf)
	if !ok || typ != tlvInterest {
		return nil, 0, false
	}
	it := &Interest{InterestLifetime: DefaultInterestLifetime}
	pos := 0
	name, used, ok := enc.ParseName(body[pos:])
	if !ok {
		return nil, 0, false
	}
	it.Name = name
	pos += used
	for pos < len(body) {
		typ, val, used, ok := parseField(body[pos:])
		if !ok {
			return nil, 0, false
		}
		switch typ {
		case tlvSelectors:
			sel, ok := parseSelectors(val)
			if !ok {
				return nil, 0, false
			}
			it.Selectors = sel
		case tlvNonce:
			it.Nonce = append([]byte{}, val...)
		case tlvInterestLifetime:
			v, ok := parseUintValue(val)
			if !ok {
				return nil, 0, false
			}
			it.InterestLifetime = time.Duration(v) * time.Millisecond
		}
		pos += used
	}
	return it, total, true
}
