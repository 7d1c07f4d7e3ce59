package wire

import (
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/types/optional"
)

// ForwardingEntry is the self-registration payload a Face signs and sends
// to its local forwarder (spec.md §4.7.2, §6). Action is always "selfreg"
// for the operations this Face performs; the field is kept as a string
// (rather than a closed enum) because the wider NDNx schema defines other
// actions this client never issues.
type ForwardingEntry struct {
	Action   string
	Name     enc.Name
	FaceID   optional.Optional[int]
	Flags    uint32
	Lifetime int32
}

func (f *ForwardingEntry) innerLength() int {
	n := bytesFieldLen(tlvAction, []byte(f.Action))
	n += f.Name.EncodingLength()
	if v, ok := f.FaceID.Get(); ok {
		n += uintFieldLen(tlvFaceID, uint64(v))
	}
	n += uintFieldLen(tlvFlags, uint64(f.Flags))
	n += uintFieldLen(tlvLifetime, uint64(uint32(f.Lifetime)))
	return n
}

// EncodingLength returns the number of bytes Encode will produce.
func (f *ForwardingEntry) EncodingLength() int {
	inner := f.innerLength()
	return tlvForwardingEntry.EncodingLength() + enc.TLNum(inner).EncodingLength() + inner
}

// Encode renders f as a standalone TLV element, suitable for use as a
// signed Data packet's Content (spec.md §6).
func (f *ForwardingEntry) Encode() []byte {
	buf := make(enc.Buffer, f.EncodingLength())
	inner := f.innerLength()
	p1 := tlvForwardingEntry.EncodeInto(buf)
	p2 := enc.TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	pos += encodeBytesField(buf[pos:], tlvAction, []byte(f.Action))
	pos += f.Name.EncodeInto(buf[pos:])
	if v, ok := f.FaceID.Get(); ok {
		pos += encodeUintField(buf[pos:], tlvFaceID, uint64(v))
	}
	pos += encodeUintField(buf[pos:], tlvFlags, uint64(f.Flags))
	encodeUintField(buf[pos:], tlvLifetime, uint64(uint32(f.Lifetime)))
	return buf
}

// ParseForwardingEntry decodes a ForwardingEntry TLV element from the
// front of buf.
func ParseForwardingEntry(buf enc.Buffer) (*ForwardingEntry, int, bool) {
	typ, body, total, ok := parseField(buf)
	if !ok || typ != tlvForwardingEntry {
		return nil, 0, false
	}
	f := &ForwardingEntry{}
	pos := 0
	for pos < len(body) {
		typ, val, used, ok := parseField(body[pos:])
		if !ok {
			return nil, 0, false
		}
		switch typ {
		case tlvAction:
			f.Action = string(val)
		case enc.NameType:
			name, n, ok := enc.ParseName(body[pos:])
			if !ok || n != used {
				return nil, 0, false
			}
			f.Name = name
		case tlvFaceID:
			v, ok := parseUintValue(val)
			if !ok {
				return nil, 0, false
			}
			f.FaceID.Set(int(v))
		case tlvFlags:
			v, ok := parseUintValue(val)
			if !ok {
				return nil, 0, false
			}
			f.Flags = uint32(v)
		case tlvLifetime:
			v, ok := parseUintValue(val)
			if !ok {
				return nil, 0, false
			}
			f.Lifetime = int32(uint32(v))
		}
		pos += used
	}
	return f, total, true
}
