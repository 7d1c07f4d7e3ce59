// Package wire implements the packet schema the Face encodes onto, and
// decodes off of, the transport (spec.md §6). The real deployment target
// is the NDNx binary-XML schema, which spec.md §1 explicitly treats as an
// external collaborator ("byte-exact encode/decode is available"); since
// no such codec ships in this retrieval pack, this package implements a
// self-consistent, hand-written TLV schema (type-length-value, varint
// lengths) sufficient for round-trip correctness and for driving the
// DummyFace test harness end to end, in the same varint/Buffer/Wire style
// as std/encoding. Swapping this package for a byte-exact NDNx codec is a
// drop-in: the Face engine only depends on the Interest/Data structs,
// their Encode methods, and the Sniff/Parse* functions.
package wire

import enc "github.com/named-data/ndndface/std/encoding"

// Field type tags. Each field in the schema gets its own global tag; the
// parse routines dispatch on each child field's tag, so fields are
// recognised by tag rather than by position.
const (
	tlvInterest           enc.TLNum = 0x01
	tlvData               enc.TLNum = 0x02
	tlvForwardingEntry    enc.TLNum = 0x03
	tlvNonce              enc.TLNum = 0x05
	tlvInterestLifetime   enc.TLNum = 0x06
	tlvSelectors          enc.TLNum = 0x09
	tlvMinSuffix          enc.TLNum = 0x0a
	tlvMaxSuffix          enc.TLNum = 0x0b
	tlvPublisherKeyDigest enc.TLNum = 0x0c
	tlvExclude            enc.TLNum = 0x0d
	tlvChildSelector      enc.TLNum = 0x0e
	tlvAnswerOriginKind   enc.TLNum = 0x0f
	tlvScope              enc.TLNum = 0x10
	tlvContent            enc.TLNum = 0x11
	tlvSignedInfo         enc.TLNum = 0x12
	tlvSignature          enc.TLNum = 0x13
	tlvTimestamp          enc.TLNum = 0x14
	tlvFreshness          enc.TLNum = 0x15
	tlvKeyLocatorName     enc.TLNum = 0x16
	tlvKeyLocatorKey      enc.TLNum = 0x17
	tlvKeyLocatorCert     enc.TLNum = 0x18
	tlvSigType            enc.TLNum = 0x19
	tlvWitness            enc.TLNum = 0x1a
	tlvSigValue           enc.TLNum = 0x1b
	tlvAction             enc.TLNum = 0x1c
	tlvFaceID             enc.TLNum = 0x1d
	tlvFlags              enc.TLNum = 0x1e
	tlvLifetime           enc.TLNum = 0x1f
	tlvExcludeComponent   enc.TLNum = 0x20
)

// encodeBytesField writes typ, the length of val, then val itself into buf.
func encodeBytesField(buf enc.Buffer, typ enc.TLNum, val []byte) int {
	p1 := typ.EncodeInto(buf)
	p2 := enc.TLNum(len(val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], val)
	return p1 + p2 + len(val)
}

func bytesFieldLen(typ enc.TLNum, val []byte) int {
	return typ.EncodingLength() + enc.TLNum(len(val)).EncodingLength() + len(val)
}

// tlnumBytes returns the standalone varint encoding of val.
func tlnumBytes(val uint64) []byte {
	b := make([]byte, enc.TLNum(val).EncodingLength())
	enc.TLNum(val).EncodeInto(b)
	return b
}

func encodeUintField(buf enc.Buffer, typ enc.TLNum, val uint64) int {
	return encodeBytesField(buf, typ, tlnumBytes(val))
}

func uintFieldLen(typ enc.TLNum, val uint64) int {
	return bytesFieldLen(typ, tlnumBytes(val))
}

// parseField reads one (type, length, value) triple from the front of buf.
func parseField(buf enc.Buffer) (typ enc.TLNum, val enc.Buffer, consumed int, ok bool) {
	t, p1, ok := enc.ParseTLNum(buf)
	if !ok {
		return 0, nil, 0, false
	}
	l, p2, ok := enc.ParseTLNum(buf[p1:])
	if !ok {
		return 0, nil, 0, false
	}
	start := p1 + p2
	end := start + int(l)
	if end > len(buf) {
		return 0, nil, 0, false
	}
	return enc.TLNum(t), buf[start:end], end, true
}

func parseUintValue(val enc.Buffer) (uint64, bool) {
	v, n, ok := enc.ParseTLNum(val)
	if !ok || n != len(val) {
		return 0, false
	}
	return uint64(v), true
}
