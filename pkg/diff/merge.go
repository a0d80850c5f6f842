package diff

import "github.com/matzehuels/pandiff/pkg/ast"

// Entry is one emitted block of a merge.
type Entry struct {
	Status Status
	Block  *ast.Node

	// BeforeIndex and AfterIndex locate Block in the inputs; -1 when the
	// block does not come from that side. Unchanged entries set both.
	BeforeIndex int
	AfterIndex  int

	// Changed marks the two halves of a positional change: a removed entry
	// immediately followed by an added entry.
	Changed bool
}

// Align classifies every block of before and after, in merged order.
//
// The anchors are the blocks of the longest common subsequence. A cursor
// walks each input. At each step:
//
//   - a before block that is not an anchor is removed;
//   - otherwise an after block that is not an anchor is added;
//   - otherwise both are anchors: equal blocks are unchanged, and differing
//     ones are emitted as a removed/added pair;
//   - once one side is exhausted the rest of the other side drains as
//     removed or added.
//
// Every block of before and every block of after appears in exactly one
// entry, and the projection of the result onto either side preserves that
// side's order.
func Align(before, after []*ast.Node) []Entry {
	da, db := digests(before), digests(after)

	anchors := make(map[string]struct{})
	for _, p := range lcsPairs(da, db) {
		anchors[da[p[0]]] = struct{}{}
	}
	isAnchor := func(d string) bool {
		_, ok := anchors[d]
		return ok
	}

	entries := make([]Entry, 0, len(before)+len(after))
	removed := func(i int, changed bool) {
		entries = append(entries, Entry{Status: StatusRemoved, Block: before[i], BeforeIndex: i, AfterIndex: -1, Changed: changed})
	}
	added := func(j int, changed bool) {
		entries = append(entries, Entry{Status: StatusAdded, Block: after[j], BeforeIndex: -1, AfterIndex: j, Changed: changed})
	}

	i, j := 0, 0
	for i < len(before) || j < len(after) {
		switch {
		case i < len(before) && !isAnchor(da[i]):
			removed(i, false)
			i++
		case j < len(after) && !isAnchor(db[j]):
			added(j, false)
			j++
		case i < len(before) && j < len(after):
			if da[i] == db[j] {
				entries = append(entries, Entry{Status: StatusUnchanged, Block: before[i], BeforeIndex: i, AfterIndex: j})
			} else {
				removed(i, true)
				added(j, true)
			}
			i++
			j++
		case i < len(before):
			removed(i, false)
			i++
		default:
			added(j, false)
			j++
		}
	}
	return entries
}

// Merge returns the annotated block sequence for before and after:
// unchanged blocks as-is, every other block wrapped by [Annotate].
func Merge(before, after []*ast.Node) []*ast.Node {
	return Materialize(Align(before, after))
}

// Materialize turns aligned entries into output blocks.
func Materialize(entries []Entry) []*ast.Node {
	out := make([]*ast.Node, len(entries))
	for k, e := range entries {
		if e.Status == StatusUnchanged {
			out[k] = e.Block
			continue
		}
		out[k] = Annotate(e.Block, e.Status)
	}
	return out
}
