// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// decodeModifiedUTF8 decodes the JVM's modified UTF-8 encoding (JVMS
// 4.4.7): like UTF-8 except U+0000 is encoded as the overlong two-byte
// sequence 0xC0 0x80, and supplementary characters (beyond the BMP) are
// encoded as a CESU-8 surrogate pair, each half as a three-byte sequence,
// rather than as a single four-byte UTF-8 sequence.
//
// This is a hand-rolled decoder: no package in the Go ecosystem speaks
// modified UTF-8 specifically, and encoding/unicode's UTF-16/UTF-8 decoders
// reject both of the deviations above. decodeModifiedUTF8 returns the
// decoded string and true, or ("", false) if b is not valid modified UTF-8.
func decodeModifiedUTF8(b []byte) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(b))
	i := 0
	for i < len(b) {
		c0 := b[i]
		switch {
		case c0&0x80 == 0:
			// 0xxxxxxx, one byte, but the lone zero byte (true NUL) is not
			// legal modified UTF-8 -- it must be the overlong two-byte form.
			if c0 == 0 {
				return "", false
			}
			sb.WriteByte(c0)
			i++

		case c0&0xE0 == 0xC0:
			// 110xxxxx 10xxxxxx, two bytes.
			if i+1 >= len(b) {
				return "", false
			}
			c1 := b[i+1]
			if c1&0xC0 != 0x80 {
				return "", false
			}
			r := (rune(c0&0x1F) << 6) | rune(c1&0x3F)
			// Overlong NUL is the one two-byte form the spec requires.
			// Any other overlong two-byte encoding is invalid.
			if r != 0 && r < 0x80 {
				return "", false
			}
			sb.WriteRune(r)
			i += 2

		case c0&0xF0 == 0xE0:
			// 1110xxxx 10xxxxxx 10xxxxxx, three bytes. May be a literal
			// BMP code point, or one half of a CESU-8 surrogate pair.
			if i+2 >= len(b) {
				return "", false
			}
			c1, c2 := b[i+1], b[i+2]
			if c1&0xC0 != 0x80 || c2&0xC0 != 0x80 {
				return "", false
			}
			r := (rune(c0&0x0F) << 12) | (rune(c1&0x3F) << 6) | rune(c2&0x3F)
			if r < 0x800 {
				return "", false
			}
			if r >= 0xD800 && r <= 0xDBFF {
				// High surrogate: must be immediately followed by a low
				// surrogate, also three-byte encoded.
				if i+5 >= len(b) || b[i+3] != 0xED {
					return "", false
				}
				d1, d2 := b[i+4], b[i+5]
				if d1&0xC0 != 0x80 || d2&0xC0 != 0x80 {
					return "", false
				}
				low := (rune(0x0D) << 12) | (rune(d1&0x3F) << 6) | rune(d2&0x3F)
				if low < 0xDC00 || low > 0xDFFF {
					return "", false
				}
				combined := 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
				sb.WriteRune(combined)
				i += 6
				continue
			}
			if r >= 0xDC00 && r <= 0xDFFF {
				// A low surrogate with no preceding high surrogate.
				return "", false
			}
			sb.WriteRune(r)
			i += 3

		default:
			return "", false
		}
	}
	return sb.String(), true
}
