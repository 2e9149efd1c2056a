package knot

import (
	"strconv"
	"strings"

	"github.com/mgeier/knotwork/pkg/errors"
)

// String returns the bracketed textual encoding of the sequence, e.g.
// "[1,-2,3,-1,2,-3]". The unknot encodes as "[]". This encoding is the input
// to [GaussCode.ContentHash] and the wire format used by flat-file import
// and export; [Parse] is its exact inverse.
func (g GaussCode) String() string {
	if len(g.seq) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.Grow(3 * len(g.seq))
	b.WriteByte('[')
	for i, v := range g.seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// IsMalformed reports whether err is the soft well-formedness failure
// produced by [Parse]. Callers that keep malformed diagrams use this to
// distinguish the soft signal from hard syntax errors.
func IsMalformed(err error) bool {
	return errors.Is(err, errors.ErrCodeMalformedDiagram)
}

// Parse decodes the bracketed textual encoding produced by
// [GaussCode.String]. Surrounding whitespace and whitespace around commas is
// tolerated; "[]" and "" decode to the unknot.
//
// A syntactically invalid string returns the zero GaussCode and an error with
// code [errors.ErrCodeInvalidEncoding]. A syntactically valid string whose
// sequence violates the well-formedness rule returns the decoded value
// together with an error carrying [errors.ErrCodeMalformedDiagram]: callers
// that tolerate malformed diagrams keep the value, strict callers treat the
// error as fatal.
func Parse(s string) (GaussCode, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return GaussCode{}, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return GaussCode{}, errors.New(errors.ErrCodeInvalidEncoding, "gauss code must be bracketed: %q", s)
	}
	body := s[1 : len(s)-1]
	parts := strings.Split(body, ",")
	seq := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return GaussCode{}, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "bad entry %q in %q", p, s)
		}
		seq = append(seq, v)
	}
	g := GaussCode{seq: seq}
	if !g.WellFormed() {
		return g, errors.New(errors.ErrCodeMalformedDiagram, "sequence %s is not a valid gauss code", g)
	}
	return g, nil
}
