package face

import (
	"bufio"
	"io"

	enc "github.com/named-data/ndndface/std/encoding"
)

// elementLength inspects the TLV type+length header at the front of buf
// and reports the total encoded length of the element (header included),
// or ok=false if buf does not yet hold enough bytes to know.
func elementLength(buf []byte) (n int, ok bool) {
	_, p1, ok := enc.ParseTLNum(buf)
	if !ok {
		return 0, false
	}
	l, p2, ok := enc.ParseTLNum(buf[p1:])
	if !ok {
		return 0, false
	}
	return p1 + p2 + int(l), true
}

// readElements reads length-framed TLV elements from r, delivering each
// complete element to onElement in arrival order (spec.md §4.5: "the
// transport adapter is responsible for element framing; the Face sees
// only full elements"). onElement returning false stops the loop.
func readElements(r io.Reader, onElement func([]byte) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	for {
		n, ok := elementLength(buf)
		for !ok {
			b, err := br.ReadByte()
			if err != nil {
				return err
			}
			buf = append(buf, b)
			n, ok = elementLength(buf)
		}
		for len(buf) < n {
			b, err := br.ReadByte()
			if err != nil {
				return err
			}
			buf = append(buf, b)
		}
		elem := make([]byte, n)
		copy(elem, buf[:n])
		buf = buf[n:]
		if !onElement(elem) {
			return nil
		}
	}
}
