package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Segment is a piece of an inline string diff.
type Segment struct {
	Kind Kind
	Text string
}

// DiffString returns the inline differences between two strings.
func DiffString(from, to string) []Segment {
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, doMultiLine))
	res := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		seg := Segment{Text: d.Text}
		switch d.Type {
		case diffpatch.DiffInsert:
			seg.Kind = Added
		case diffpatch.DiffDelete:
			seg.Kind = Removed
		}
		res = append(res, seg)
	}
	return res
}

// RenderString renders an inline diff, wrapping removed text with rm and
// added text with add.
func RenderString(segs []Segment, rm, add func(string) string) string {
	b := &strings.Builder{}
	for _, s := range segs {
		switch s.Kind {
		case Added:
			b.WriteString(add(s.Text))
		case Removed:
			b.WriteString(rm(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
