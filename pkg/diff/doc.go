// Package diff computes block-level differences between two Pandoc documents
// and merges them into one annotated document.
//
// # Overview
//
// The unit of comparison is a top-level block. Two blocks are equal when
// their canonical serializations are identical (see [ast.Canonical]); there
// is no recursive or fuzzy diffing inside a block. The merge proceeds in
// three steps:
//
//  1. [LongestCommonSubsequence] aligns the two block sequences and yields
//     the anchors: blocks present, in order, in both versions.
//  2. [Align] walks both sequences with one cursor each and classifies every
//     block as unchanged, added or removed.
//  3. [Merge] materializes the walk: unchanged blocks pass through as-is,
//     every other block is wrapped by [Annotate] in a Div carrying the
//     attribute diff=added or diff=removed.
//
// [Documents] applies this to whole documents, keeping the metadata and API
// version of the newer one.
//
// # Changed Blocks
//
// When both cursors sit on anchor blocks that differ, the position is
// treated as a change. A change is emitted as the old block marked removed
// immediately followed by the new block marked added. There is no separate
// "changed" status in the output, because renderers only recognize added
// and removed. [Entry.Changed] flags such pairs for statistics.
//
// # Tie-breaking
//
// When the LCS table offers two predecessors of equal length, the one that
// advances the "before" sequence wins. For before=[A, B] and after=[B, A]
// the anchor is A, and the result is [B added, A, B removed].
//
// # Complexity
//
// Alignment takes O(m·n) time and space for m and n blocks. Each block is
// serialized and hashed once, so comparisons inside the table are string
// comparisons of digests.
//
// # Concurrency
//
// All functions are pure. Tables and cursors are local to a call, so
// independent documents may be diffed concurrently without coordination.
package diff
