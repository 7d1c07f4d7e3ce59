package wire

import (
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/ndn"
)

// Signature carries a signature over a Data packet's signed portion
// (spec.md §3.3). A non-nil Witness marks a Merkle-tree witness
// signature, which spec.md §4.4/§9 requires rejecting as ContentBad
// rather than attempting to verify.
type Signature struct {
	Type    ndn.SigType
	Witness []byte
	Value   []byte
}

func (s *Signature) innerLength() int {
	n := uintFieldLen(tlvSigType, uint64(s.Type))
	if len(s.Witness) > 0 {
		n += bytesFieldLen(tlvWitness, s.Witness)
	}
	n += bytesFieldLen(tlvSigValue, s.Value)
	return n
}

func (s *Signature) EncodingLength() int {
	inner := s.innerLength()
	return tlvSignature.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

func (s *Signature) EncodeInto(buf enc.Buffer) int {
	inner := s.innerLength()
	p1 := tlvSignature.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	pos += encodeUintField(buf[pos:], tlvSigType, uint64(s.Type))
	if len(s.Witness) > 0 {
		pos += encodeBytesField(buf[pos:], tlvWitness, s.Witness)
	}
	pos += encodeBytesField(buf[pos:], tlvSigValue, s.Value)
	return pos
}

func parseSignature(buf enc.Buffer) (Signature, int, bool) {
	typ, body, total, ok := parseField(buf)
	if !ok || typ != tlvSignature {
		return Signature{}, 0, false
	}
	var s Signature
	pos := 0
	for pos < len(body) {
		typ, val, used, ok := parseField(body[pos:])
		if !ok {
			return Signature{}, 0, false
		}
		switch typ {
		case tlvSigType:
			v, ok := parseUintValue(val)
			if !ok {
				return Signature{}, 0, false
			}
			s.Type = ndn.SigType(v)
		case tlvWitness:
			s.Witness = append([]byte{}, val...)
		case tlvSigValue:
			s.Value = append([]byte{}, val...)
		}
		pos += used
	}
	return s, total, true
}
