package wire

import enc "github.com/named-data/ndndface/std/encoding"

// KeyLocator identifies the key that signed a Data packet (spec.md §3.4).
// It is a tagged union realized as an interface with three concrete
// implementations, mirroring the teacher's preference for small sealed
// interfaces over an enum-plus-union struct.
type KeyLocator interface {
	isKeyLocator()
	encodingLength() int
	encodeInto(buf enc.Buffer) int
}

// KeyLocatorName fetches the key by NDN name.
type KeyLocatorName struct{ Name enc.Name }

// KeyLocatorKey carries the public key inline.
type KeyLocatorKey struct{ PublicKey []byte }

// KeyLocatorCert carries a certificate inline. Verification via this
// branch is not implemented (spec.md §9's open question); Verify always
// reports ContentBad for it.
type KeyLocatorCert struct{ Certificate []byte }

func (KeyLocatorName) isKeyLocator() {}
func (KeyLocatorKey) isKeyLocator()  {}
func (KeyLocatorCert) isKeyLocator() {}

func (l KeyLocatorName) encodingLength() int {
	inner := l.Name.EncodingLength()
	return tlvKeyLocatorName.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}
func (l KeyLocatorName) encodeInto(buf enc.Buffer) int {
	inner := l.Name.EncodingLength()
	p1 := tlvKeyLocatorName.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	pos += l.Name.EncodeInto(buf[pos:])
	return pos
}

func (l KeyLocatorKey) encodingLength() int {
	return bytesFieldLen(tlvKeyLocatorKey, l.PublicKey)
}
func (l KeyLocatorKey) encodeInto(buf enc.Buffer) int {
	return encodeBytesField(buf, tlvKeyLocatorKey, l.PublicKey)
}

func (l KeyLocatorCert) encodingLength() int {
	return bytesFieldLen(tlvKeyLocatorCert, l.Certificate)
}
func (l KeyLocatorCert) encodeInto(buf enc.Buffer) int {
	return encodeBytesField(buf, tlvKeyLocatorCert, l.Certificate)
}

// parseKeyLocator decodes one KeyLocator variant from the front of buf.
func parseKeyLocator(buf enc.Buffer) (KeyLocator, int, bool) {
	typ, val, used, ok := parseField(buf)
	if !ok {
		return nil, 0, false
	}
	switch typ {
	case tlvKeyLocatorName:
		name, n, ok := enc.ParseName(val)
		if !ok || n != len(val) {
			return nil, 0, false
		}
		return KeyLocatorName{Name: name}, used, true
	case tlvKeyLocatorKey:
		return KeyLocatorKey{PublicKey: append([]byte{}, val...)}, used, true
	case tlvKeyLocatorCert:
		return KeyLocatorCert{Certificate: append([]byte{}, val...)}, used, true
	default:
		return nil, 0, false
	}
}
