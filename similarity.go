package newsparse

// SimilarText returns how similar a and b are as a percentage in [0, 100].
//
// The score is the number of characters shared by a recursive longest common
// substring match, doubled and divided by the combined length. Lengths are
// counted in runes so Cyrillic text scores the same as Latin text.
func SimilarText(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	return float64(similarChars(ra, rb)*2) * 100 / float64(total)
}

func similarChars(a, b []rune) int {
	posA, posB, n := longestCommon(a, b)
	if n == 0 {
		return 0
	}
	return n + similarChars(a[:posA], b[:posB]) + similarChars(a[posA+n:], b[posB+n:])
}

// longestCommon finds the first longest common substring of a and b,
// scanning start positions in a, then in b.
func longestCommon(a, b []rune) (posA, posB, n int) {
	for i := range a {
		if len(a)-i <= n {
			break
		}
		for j := range b {
			if len(b)-j <= n {
				break
			}
			l := 0
			for i+l < len(a) && j+l < len(b) && a[i+l] == b[j+l] {
				l++
			}
			if l > n {
				posA, posB, n = i, j, l
			}
		}
	}
	return posA, posB, n
}
