// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package path

import (
	"strconv"
	"unicode"

	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// AddSVGPath parses the SVG path mini-language subset "M m L l H h V v Q q
// C c Z z" and appends the resulting segments to p. Relative ("lowercase")
// and absolute ("uppercase") commands are honored as per the SVG spec.
// S, T and A commands are recognized but report Unsupported, since this
// engine does not implement smooth-curve shorthand or elliptical arcs.
// Malformed input fails with InvalidData.
func (p *Path) AddSVGPath(s string) error {
	p.mustDefault()
	toks := tokenizeSVG(s)
	i := 0
	next := func() (float32, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 32)
		if err != nil {
			return 0, false
		}
		i++
		return float32(v), true
	}
	var cur, start linear.V3
	var cmd byte
	for i < len(toks) {
		if isCommand(toks[i]) {
			cmd = toks[i][0]
			i++
		}
		switch cmd {
		case 'M', 'm':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				return newErr(errs.InvalidData, "malformed M/m command")
			}
			pt := linear.V3{x, y, 0}
			if cmd == 'm' {
				pt[0] += cur[0]
				pt[1] += cur[1]
			}
			p.MoveTo(pt)
			cur, start = pt, pt
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				return newErr(errs.InvalidData, "malformed L/l command")
			}
			pt := linear.V3{x, y, 0}
			if cmd == 'l' {
				pt[0] += cur[0]
				pt[1] += cur[1]
			}
			p.LineTo(pt)
			cur = pt
		case 'H', 'h':
			x, ok := next()
			if !ok {
				return newErr(errs.InvalidData, "malformed H/h command")
			}
			pt := cur
			if cmd == 'h' {
				pt[0] += x
			} else {
				pt[0] = x
			}
			p.LineTo(pt)
			cur = pt
		case 'V', 'v':
			y, ok := next()
			if !ok {
				return newErr(errs.InvalidData, "malformed V/v command")
			}
			pt := cur
			if cmd == 'v' {
				pt[1] += y
			} else {
				pt[1] = y
			}
			p.LineTo(pt)
			cur = pt
		case 'Q', 'q':
			cx, ok1 := next()
			cy, ok2 := next()
			x, ok3 := next()
			y, ok4 := next()
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return newErr(errs.InvalidData, "malformed Q/q command")
			}
			ctl := linear.V3{cx, cy, 0}
			pt := linear.V3{x, y, 0}
			if cmd == 'q' {
				ctl[0] += cur[0]
				ctl[1] += cur[1]
				pt[0] += cur[0]
				pt[1] += cur[1]
			}
			p.Bezier2To(ctl, pt)
			cur = pt
		case 'C', 'c':
			c0x, ok1 := next()
			c0y, ok2 := next()
			c1x, ok3 := next()
			c1y, ok4 := next()
			x, ok5 := next()
			y, ok6 := next()
			if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
				return newErr(errs.InvalidData, "malformed C/c command")
			}
			ctl0 := linear.V3{c0x, c0y, 0}
			ctl1 := linear.V3{c1x, c1y, 0}
			pt := linear.V3{x, y, 0}
			if cmd == 'c' {
				ctl0[0] += cur[0]
				ctl0[1] += cur[1]
				ctl1[0] += cur[0]
				ctl1[1] += cur[1]
				pt[0] += cur[0]
				pt[1] += cur[1]
			}
			p.Bezier3To(ctl0, ctl1, pt)
			cur = pt
		case 'Z', 'z':
			p.Close()
			cur = start
		case 'S', 's', 'T', 't', 'A', 'a':
			return errs.New(pkgName, errs.Unsupported, "SVG command '"+string(cmd)+"' is not supported")
		default:
			return newErr(errs.InvalidData, "unrecognized SVG command")
		}
	}
	return nil
}

func isCommand(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	c := tok[0]
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'C', 'c', 'Z', 'z',
		'S', 's', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

// tokenizeSVG splits a path data string into command letters and numeric
// tokens, handling the SVG convention of numbers packed without
// whitespace (e.g. "1.5-2.3" or "1,2").
func tokenizeSVG(s string) []string {
	var toks []string
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		switch {
		case unicode.IsSpace(rune(c)) || c == ',':
			i++
		case isCommand(string(c)):
			toks = append(toks, string(c))
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			seenDot := c == '.'
			for j < n {
				d := s[j]
				if d >= '0' && d <= '9' {
					j++
					continue
				}
				if d == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				if (d == 'e' || d == 'E') && j+1 < n {
					j++
					continue
				}
				if (d == '-' || d == '+') && j > i && (s[j-1] == 'e' || s[j-1] == 'E') {
					j++
					continue
				}
				break
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			i++
		}
	}
	return toks
}
