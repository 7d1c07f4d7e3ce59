package wire

import (
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/types/optional"
)

// SignedInfo carries a Data packet's key locator, publisher digest, and
// timestamp/freshness metadata (spec.md §3.3).
type SignedInfo struct {
	Locator                  KeyLocator
	PublisherPublicKeyDigest []byte
	Timestamp                uint64
	FreshnessSeconds         optional.Optional[int]
}

func (si *SignedInfo) innerLength() int {
	n := 0
	if si.Locator != nil {
		n += si.Locator.encodingLength()
	}
	if len(si.PublisherPublicKeyDigest) > 0 {
		n += bytesFieldLen(tlvPublisherKeyDigest, si.PublisherPublicKeyDigest)
	}
	n += uintFieldLen(tlvTimestamp, si.Timestamp)
	if v, ok := si.FreshnessSeconds.Get(); ok {
		n += uintFieldLen(tlvFreshness, uint64(v))
	}
	return n
}

func (si *SignedInfo) EncodingLength() int {
	inner := si.innerLength()
	return tlvSignedInfo.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

func (si *SignedInfo) EncodeInto(buf enc.Buffer) int {
	inner := si.innerLength()
	p1 := tlvSignedInfo.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	if si.Locator != nil {
		pos += si.Locator.encodeInto(buf[pos:])
	}
	if len(si.PublisherPublicKeyDigest) > 0 {
		pos += encodeBytesField(buf[pos:], tlvPublisherKeyDigest, si.PublisherPublicKeyDigest)
	}
	pos += encodeUintField(buf[pos:], tlvTimestamp, si.Timestamp)
	if v, ok := si.FreshnessSeconds.Get(); ok {
		pos += encodeUintField(buf[pos:], tlvFreshness, uint64(v))
	}
	return pos
}

func parseSignedInfo(buf enc.Buffer) (SignedInfo, int, bool) {
	typ, body, total, ok := parseField(buf)
	if !ok || typ != tlvSignedInfo {
		return SignedInfo{}, 0, false
	}
	var si SignedInfo
	pos := 0
	for pos < len(body) {
		typ, val, used, ok := parseField(body[pos:])
		if !ok {
			return SignedInfo{}, 0, false
		}
		switch typ {
		case tlvKeyLocatorName, tlvKeyLocatorKey, tlvKeyLocatorCert:
			loc, n, ok := parseKeyLocator(body[pos:])
			if !ok || n != used {
				return SignedInfo{}, 0, false
			}
			si.Locator = loc
		case tlvPublisherKeyDigest:
			si.PublisherPublicKeyDigest = append([]byte{}, val...)
		case tlvTimestamp:
			v, ok := parseUintValue(val)
			if !ok {
				return SignedInfo{}, 0, false
			}
			si.Timestamp = v
		case tlvFreshness:
			v, ok := parseUintValue(val)
			if !ok {
				return SignedInfo{}, 0, false
			}
			si.FreshnessSeconds.Set(int(v))
		}
		pos += used
	}
	return si, total, true
}

// Data is a reply packet carrying a name, content, signing metadata, and
// a signature (spec.md §3.3).
type Data struct {
	Name       enc.Name
	Content    []byte
	SignedInfo SignedInfo
	Signature  Signature
}

// SignedPortion returns the wire covering everything a signature must be
// computed over: the name, content, and signed-info, but not the
// signature itself.
func (d *Data) SignedPortion() enc.Wire {
	buf := make(enc.Buffer, d.Name.EncodingLength()+bytesFieldLen(tlvContent, d.Content)+d.SignedInfo.EncodingLength())
	pos := d.Name.EncodeInto(buf)
	pos += encodeBytesField(buf[pos:], tlvContent, d.Content)
	d.SignedInfo.EncodeInto(buf[pos:])
	return enc.Wire{buf}
}

func (d *Data) innerLength() int {
	return d.Name.EncodingLength() +
		bytesFieldLen(tlvContent, d.Content) +
		d.SignedInfo.EncodingLength() +
		d.Signature.EncodingLength()
}

// EncodingLength returns the number of bytes Encode will produce.
func (d *Data) EncodingLength() int {
	inner := d.innerLength()
	return tlvData.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

// Encode renders d as a standalone TLV element.
func (d *Data) Encode() enc.Wire {
	buf := make(enc.Buffer, d.EncodingLength())
	inner := d.innerLength()
	p1 := tlvData.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	pos += d.Name.EncodeInto(buf[pos:])
	pos += encodeBytesField(buf[pos:], tlvContent, d.Content)
	pos += d.SignedInfo.EncodeInto(buf[pos:])
	d.Signature.EncodeInto(buf[pos:])
	return enc.Wire{buf}
}

// ParseData decodes a Data TLV element (including its own type wrapper)
// from the front of buf, returning the number of bytes consumed.
func ParseData(buf enc.Buffer) (*Data, int, bool) {
	typ, body, total, ok := parseField(buf)
	if !ok || typ != tlvData {
		return nil, 0, false
	}
	d := &Data{}
	pos := 0
	name, used, ok := enc.ParseName(body[pos:])
	if !ok {
		return nil, 0, false
	}
	d.Name = name
	pos += used
	for pos < len(body) {
		typ, val, used, ok := parseField(body[pos:])
		if !ok {
			return nil, 0, false
		}
		switch typ {
		case tlvContent:
			d.Content = append([]byte{}, val...)
		case tlvSignedInfo:
			si, n, ok := parseSignedInfo(body[pos:])
			if !ok || n != used {
				return nil, 0, false
			}
			d.SignedInfo = si
		case tlvSignature:
			sig, n, ok := parseSignature(body[pos:])
			if !ok || n != used {
				return nil, 0, false
			}
			d.Signature = sig
		}
		pos += used
	}
	return d, total, true
}
