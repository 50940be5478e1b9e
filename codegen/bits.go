package codegen

import "fmt"

// EncodeInt renders v as a sign-magnitude bit string: a sign cell ('0' for
// v >= 0, '1' for v < 0) followed by |v|'s bits least-significant-bit first,
// with no trailing zero bits kept (spec.md §3's data model: "a signed
// integer is written least-significant-bit first, preceded by a sign bit").
// Zero is the single cell "0" — not a sign bit followed by an empty
// magnitude — matching §8.1's round-trip property directly.
func EncodeInt(v int) string {
	if v == 0 {
		return "0"
	}
	sign := byte('0')
	mag := uint64(v)
	if v < 0 {
		sign = '1'
		mag = uint64(-v)
	}
	buf := []byte{sign}
	for mag > 0 {
		if mag&1 == 1 {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
		mag >>= 1
	}
	return string(buf)
}

// DecodeInt parses a sign-magnitude bit string (as EncodeInt produces, or as
// a generated machine leaves on a variable tape ahead of its delimiting
// blank) back into v. A single-cell boolean decodes as 0 ("0") or 1 ("1").
func DecodeInt(bits string) (int, error) {
	if bits == "0" {
		return 0, nil
	}
	if bits == "1" {
		return 1, nil
	}
	if len(bits) < 2 {
		return 0, fmt.Errorf("codegen: malformed int encoding %q", bits)
	}
	var neg bool
	switch bits[0] {
	case '0':
	case '1':
		neg = true
	default:
		return 0, fmt.Errorf("codegen: bad sign bit %q in %q", bits[0], bits)
	}
	var mag uint64
	for i := len(bits) - 1; i >= 1; i-- {
		mag <<= 1
		switch bits[i] {
		case '0':
		case '1':
			mag |= 1
		default:
			return 0, fmt.Errorf("codegen: bad bit %q in %q", bits[i], bits)
		}
	}
	if mag == 0 {
		return 0, fmt.Errorf("codegen: non-canonical zero encoding %q", bits)
	}
	v := int(mag)
	if neg {
		v = -v
	}
	return v, nil
}

// encodeTwosComplement renders v as a width-bit two's complement string,
// most-significant bit first. Used only for the ip/ipStack-frame encoding,
// where every value (line numbers 0..NumLines-1 and the -2 return sentinel,
// plus -1 as the end-of-program marker) is known ahead of time to fit a
// fixed width chosen by Layout.IPWidth — unlike source-language ints, there
// is no unbounded range to accommodate here.
func encodeTwosComplement(v, width int) string {
	u := uint64(v) & ((uint64(1) << uint(width)) - 1)
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		if u&1 == 1 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
		u >>= 1
	}
	return string(buf)
}
