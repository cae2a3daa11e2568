package predicate

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Document exposes job attributes to Eval. ok is false when the value is absent.
type Document interface {
	Text(f Field) (string, bool)
	Number(f Field) (float64, bool)
	Time(f Field) (time.Time, bool)
}

// Eval reports whether doc satisfies e. Absent values never satisfy a
// comparison, which matches SQL NULL handling in the postgres store.
func Eval(e Expr, doc Document) bool {
	switch n := e.(type) {
	case Eq:
		v, ok := doc.Text(n.Field)
		return ok && v == n.Value
	case In:
		v, ok := doc.Text(n.Field)
		if !ok {
			return false
		}
		for _, want := range n.Values {
			if v == want {
				return true
			}
		}
		return false
	case Contains:
		v, ok := doc.Text(n.Field)
		return ok && strings.Contains(fold(v), fold(n.Term))
	case Compare:
		v, ok := doc.Number(n.Field)
		if !ok {
			return false
		}
		switch n.Op {
		case OpGte:
			return v >= n.Value
		case OpLte:
			return v <= n.Value
		}
		return false
	case After:
		v, ok := doc.Time(n.Field)
		return ok && v.After(n.Time)
	case And:
		for _, t := range n.Terms {
			if !Eval(t, doc) {
				return false
			}
		}
		return true
	case Or:
		for _, t := range n.Terms {
			if Eval(t, doc) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// fold puts text in NFC lower case so precomposed and decomposed
// Vietnamese compare equal.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
