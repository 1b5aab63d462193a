package progression

import (
	"math/rand/v2"
	"strings"
)

// Blank replaces hidden letters in a cloze hint.
const Blank = "_"

// Cloze renders word with a random set of letters blanked out, one token per
// letter separated by single spaces. Between 1 and ceil(len/2) letters are
// hidden, never all of them; words of length 0 or 1 yield an empty hint.
func Cloze(word string, rng *rand.Rand) string {
	letters := []rune(word)
	n := len(letters)
	if n <= 1 {
		return ""
	}

	upper := max(1, (n+1)/2)
	hidden := min(1+rng.IntN(upper), n-1)

	blank := make(map[int]bool, hidden)
	for _, idx := range rng.Perm(n)[:hidden] {
		blank[idx] = true
	}

	tokens := make([]string, n)
	for i, r := range letters {
		if blank[i] {
			tokens[i] = Blank
		} else {
			tokens[i] = string(r)
		}
	}
	return strings.Join(tokens, " ")
}
