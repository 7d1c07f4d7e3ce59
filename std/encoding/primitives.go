package encoding

import "encoding/binary"

// TLNum is a TLV type-or-length number, encoded with NDN's variable-length
// numeric scheme: 1 byte for values <= 0xfc, a 0xfd marker + 2 bytes, a
// 0xfe marker + 4 bytes, or a 0xff marker + 8 bytes.
type TLNum uint64

// EncodingLength returns the number of bytes EncodeInto will write.
func (v TLNum) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xfc:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// EncodeInto writes v into buf and returns the number of bytes written.
func (v TLNum) EncodeInto(buf Buffer) int {
	switch x := uint64(v); {
	case x <= 0xfc:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(x))
		return 3
	case x <= 0xffffffff:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(x))
		return 5
	default:
		buf[0] = 0xff
		binary.BigEndian.PutUint64(buf[1:], uint64(x))
		return 9
	}
}

// ParseTLNum parses a TLNum from the front of buf, returning the value and
// the number of bytes consumed. Returns ok=false if buf is too short.
func ParseTLNum(buf Buffer) (val TLNum, pos int, ok bool) {
	if len(buf) == 0 {
		return 0, 0, false
	}
	switch x := buf[0]; {
	case x <= 0xfc:
		return TLNum(x), 1, true
	case x == 0xfd:
		if len(buf) < 3 {
			return 0, 0, false
		}
		return TLNum(binary.BigEndian.Uint16(buf[1:3])), 3, true
	case x == 0xfe:
		if len(buf) < 5 {
			return 0, 0, false
		}
		return TLNum(binary.BigEndian.Uint32(buf[1:5])), 5, true
	default:
		if len(buf) < 9 {
			return 0, 0, false
		}
		return TLNum(binary.BigEndian.Uint64(buf[1:9])), 9, true
	}
}
