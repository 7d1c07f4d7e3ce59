package encoding

import "strings"

// Name is an ordered sequence of opaque byte components (spec.md §3.1).
// Names are value types: once built, a Name should not be mutated in
// place; Append returns a new Name.
type Name []Component

// NameFromString parses a "/"-separated, percent-escaped URI into a Name.
// A leading "/" is optional; empty segments (e.g. from a trailing slash)
// are skipped.
func NameFromString(s string) (Name, error) {
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return Name{}, nil
	}
	parts := strings.Split(s, "/")
	n := make(Name, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		c, err := ComponentFromString(p)
		if err != nil {
			return nil, err
		}
		n = append(n, c)
	}
	return n, nil
}

// Append returns a new Name with the given components appended. The
// receiver is left unmodified.
func (n Name) Append(comps ...Component) Name {
	out := make(Name, len(n)+len(comps))
	copy(out, n)
	copy(out[len(n):], comps)
	return out
}

// Prefix returns the first l components of the name. A negative l counts
// from the end, matching the teacher's enc.Name.Prefix convention
// (Prefix(-1) strips the last component).
func (n Name) Prefix(l int) Name {
	if l < 0 {
		l = len(n) + l
	}
	if l < 0 {
		l = 0
	}
	if l > len(n) {
		l = len(n)
	}
	out := make(Name, l)
	copy(out, n[:l])
	return out
}

// Len returns the number of components in the name.
func (n Name) Len() int { return len(n) }

// Equal reports whether two names have the same components in the same order.
func (n Name) Equal(rhs Name) bool {
	if len(n) != len(rhs) {
		return false
	}
	for i := range n {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether n is a (not necessarily strict) prefix of other.
func (n Name) IsPrefixOf(other Name) bool {
	if len(n) > len(other) {
		return false
	}
	for i := range n {
		if !n[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Match reports whether n is a prefix of, or equal to, other (spec.md §4.1).
func (n Name) Match(other Name) bool {
	return n.IsPrefixOf(other)
}

// Clone returns a deep copy of the name.
func (n Name) Clone() Name {
	out := make(Name, len(n))
	for i, c := range n {
		out[i] = Component{Val: append([]byte(nil), c.Val...)}
	}
	return out
}

// String renders the name in its percent-escaped URI form, e.g.
// "/testecho/hello" or "/%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY".
func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	sb := strings.Builder{}
	for _, c := range n {
		sb.WriteByte('/')
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Hash returns a fast, non-cryptographic hash over the whole name,
// combining each component's hash (ported style from the teacher's
// Component.Hash, extended across all components).
func (n Name) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV offset basis, mixed with component hashes below
	for _, c := range n {
		h ^= c.Hash()
		h *= 1099511628211 // FNV prime
	}
	return h
}

// EncodingLength returns the number of bytes EncodeInto will write.
func (n Name) EncodingLength() int {
	inner := 0
	for _, c := range n {
		inner += c.EncodingLength()
	}
	return nameType.EncodingLength() + TLNum(inner).EncodingLength() + inner
}

// NameType is the TLV type tag for an encoded Name, exported so other
// packages (e.g. wire) can recognize a Name field while walking a
// containing structure's fields generically.
const NameType TLNum = 0x07

const nameType = NameType

// EncodeInto writes the TLV-encoded name (including its own Name-type
// wrapper) into buf.
func (n Name) EncodeInto(buf Buffer) int {
	inner := 0
	for _, c := range n {
		inner += c.EncodingLength()
	}
	p1 := nameType.EncodeInto(buf)
	p2 := TLNum(inner).EncodeInto(buf[p1:])
	pos := p1 + p2
	for _, c := range n {
		pos += c.EncodeInto(buf[pos:])
	}
	return pos
}

// Bytes returns the standalone TLV encoding of the name.
func (n Name) Bytes() []byte {
	buf := make([]byte, n.EncodingLength())
	n.EncodeInto(buf)
	return buf
}

// ParseName reads one TLV-encoded Name (including its Name-type wrapper)
// from the front of buf, returning the name and bytes consumed.
func ParseName(buf Buffer) (Name, int, bool) {
	typ, p1, ok := ParseTLNum(buf)
	if !ok || TLNum(typ) != nameType {
		return nil, 0, false
	}
	l, p2, ok := ParseTLNum(buf[p1:])
	if !ok {
		return nil, 0, false
	}
	start := p1 + p2
	end := start + int(l)
	if end > len(buf) {
		return nil, 0, false
	}
	inner := buf[start:end]
	n := Name{}
	pos := 0
	for pos < len(inner) {
		c, used, ok := ParseComponent(inner[pos:])
		if !ok {
			return nil, 0, false
		}
		n = append(n, c)
		pos += used
	}
	return n, end, true
}
