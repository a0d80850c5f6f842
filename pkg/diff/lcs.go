package diff

import "github.com/matzehuels/pandiff/pkg/ast"

// LongestCommonSubsequence returns the longest sequence of blocks that
// occurs, in order, in both before and after. The returned nodes are taken
// from before. Either input being empty yields an empty result.
//
// Equal blocks that repeat are matched independently; a block appearing
// twice in both inputs can contribute two anchors.
func LongestCommonSubsequence(before, after []*ast.Node) []*ast.Node {
	pairs := lcsPairs(digests(before), digests(after))
	out := make([]*ast.Node, len(pairs))
	for k, p := range pairs {
		out[k] = before[p[0]]
	}
	return out
}

// lcsPairs returns the index pairs (i into a, j into b) of a longest common
// subsequence of a and b.
//
// The table holds only prefix lengths: cell (i, j) is the LCS length of
// a[:i] and b[:j]. On a mismatch the cell copies the longer of its upper
// and left neighbours, preferring the upper one on a tie. The backtracking
// pass repeats the same decisions, so it reconstructs exactly the
// subsequence that cell (m, n) stands for.
func lcsPairs(a, b []string) [][2]int {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return nil
	}

	w := n + 1
	table := make([]int32, (m+1)*w)
	for i := 1; i <= m; i++ {
		row, up := i*w, (i-1)*w
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				table[row+j] = table[up+j-1] + 1
			case table[up+j] >= table[row+j-1]:
				table[row+j] = table[up+j]
			default:
				table[row+j] = table[row+j-1]
			}
		}
	}

	k := int(table[m*w+n])
	pairs := make([][2]int, k)
	i, j := m, n
	for k > 0 {
		switch {
		case a[i-1] == b[j-1]:
			k--
			pairs[k] = [2]int{i - 1, j - 1}
			i--
			j--
		case table[(i-1)*w+j] >= table[i*w+j-1]:
			i--
		default:
			j--
		}
	}
	return pairs
}
