package encoding

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// componentType is the single TLV type used for every component. The old
// CCNx/NDNx naming convention (spec.md §6, e.g. "%C1.M.S.localhost") packs
// its markers into the component's byte value itself rather than into a
// richer type system, so unlike a modern NDN-TLV-2022 codec we don't need
// a family of component types here.
const componentType TLNum = 0x08

// Component is a single opaque byte-string component of a Name.
type Component struct {
	Val []byte
}

// NewComponent wraps raw bytes as a Component.
func NewComponent(val []byte) Component {
	return Component{Val: val}
}

// Equal reports whether two components hold the same bytes.
func (c Component) Equal(rhs Component) bool {
	return bytes.Equal(c.Val, rhs.Val)
}

// Compare returns -1, 0, or 1 the way bytes.Compare does, by raw value.
func (c Component) Compare(rhs Component) int {
	return bytes.Compare(c.Val, rhs.Val)
}

// EncodingLength returns the number of bytes EncodeInto will write.
func (c Component) EncodingLength() int {
	l := len(c.Val)
	return componentType.EncodingLength() + TLNum(l).EncodingLength() + l
}

// EncodeInto writes the TLV-encoded component into buf.
func (c Component) EncodeInto(buf Buffer) int {
	p1 := componentType.EncodeInto(buf)
	p2 := TLNum(len(c.Val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], c.Val)
	return p1 + p2 + len(c.Val)
}

// Hash returns a fast, non-cryptographic hash of the component's bytes;
// Name.Hash combines these per-component hashes.
func (c Component) Hash() uint64 {
	return xxhash.Sum64(c.Val)
}

// String renders the component using the CCNx-style percent-escaped URI
// form: ASCII letters, digits and '-', '.', '_', '~' pass through,
// every other byte (including the literal '%' and '/') is escaped as %XX.
func (c Component) String() string {
	sb := strings.Builder{}
	for _, b := range c.Val {
		if isUriSafe(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteString(strings.ToUpper(hexByte(b)))
		}
	}
	return sb.String()
}

func isUriSafe(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	default:
		return false
	}
}

func hexByte(b byte) string {
	s := strconv.FormatUint(uint64(b), 16)
	if len(s) == 1 {
		s = "0" + s
	}
	return s
}

// ComponentFromString parses one percent-escaped URI path segment back
// into a Component.
func ComponentFromString(s string) (Component, error) {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if i+2 >= len(s) {
				return Component{}, ErrFormat{Msg: "truncated percent-escape in component: " + s}
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return Component{}, ErrFormat{Msg: "invalid percent-escape in component: " + s}
			}
			buf = append(buf, byte(v))
			i += 2
		} else {
			buf = append(buf, s[i])
		}
	}
	return Component{Val: buf}, nil
}

// ParseComponent reads one TLV-encoded component from the front of buf,
// returning the component and the number of bytes consumed.
func ParseComponent(buf Buffer) (Component, int, bool) {
	_, p1, ok := ParseTLNum(buf)
	if !ok {
		return Component{}, 0, false
	}
	l, p2, ok := ParseTLNum(buf[p1:])
	if !ok {
		return Component{}, 0, false
	}
	start := p1 + p2
	end := start + int(l)
	if end > len(buf) {
		return Component{}, 0, false
	}
	val := make([]byte, l)
	copy(val, buf[start:end])
	return Component{Val: val}, end, true
}
