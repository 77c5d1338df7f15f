package patterns

import (
	"github.com/Alias1177/WinGo-Predictor/models"
)

// Lookup probes suffix lengths from maxLookupLen down to minLookupLen so
// the longest matching pattern always wins. The catalogue currently holds
// lengths 4-7; 4 sits below the probe floor and longer entries can be
// added without code changes.
const (
	maxLookupLen = 10
	minLookupLen = 5
)

// streakBreakCatalogue is the fixed set of known High/Low sequences. The
// predicted next category for every entry is the opposite of its first
// character. Duplicates are tolerated: ingestion is first-seen-wins.
var streakBreakCatalogue = []string{
	"HHHL", "HHLH", "HLHH", "LHHH", "LLLH", "LLHL", "LHLL", "HLLL",
	"HHLL", "HLLH", "LLHH", "LHHL", "HLHL", "LHLH", "HHHH", "LLLL",
	"HHHHHL", "HHHHLH", "HHHLHH", "HHLHHH", "HLHHHH", "LHHHHH",
	"LLLLLH", "LLLLHL", "LLLHLL", "LLHLLL", "LHLLLL", "HLLLLL",
	"HHHLLH", "HHLLHH", "HLLHHH", "LLHHHL", "LHHHLL", "HHHLLL",
	"HHLLLH", "HLLLHH", "LLLHHH", "LLHHHL", "LHHHLL", "HHLLHL",
	"HLLHHL", "LLHHLL", "LHHLLH", "HHLLHH", "HLLHLL", "LLHHLH",
	"HHLHLH", "LHHLHH", "HLHLHL", "LHLHLH", "HHLLHH", "LLHHLL",
	"HLLHLL", "LHHLLH", "HHLLHL", "LHLLHH", "HLLHHH", "LHHLHL",
	"LLLHHL", "HHLLLH", "LHHHLH", "HHHHHHH", "LLLLLLL", "HHHHHHL", "LLLLLLH",
	"HHHHLHH", "LLLHLLL", "HHHLHHH", "HHLHHHH", "HLHHHHH", "LLHHLLH", "LHLLHHL", "LLHHLHL",
	"HHLHHLH", "LHLHLHL", "HLLHLLH", "LLHHLLL", "HHLLLLL", "LLHHHLL", "HLLHHHL", "LLHLLHH",
	"HHHHHH", "LLLLLL", "HHHLLH", "LLHHLL", "HHLHLH", "LHHLHH", "HLHLHL", "LHLHLH",
	"HHLLHH", "LLHHLL", "HLLHLL", "LHHLLH", "HHLLHL", "LHLLHH", "HLLHHH", "LHHLHL",
	"LLLHHL", "HHLLLH", "LHHHLH", "HHLLH", "LLHHL", "HLHHL", "LHLHH",
	"HHHLL", "LLLHH", "LHLLH", "HLLLH", "LHHLH", "LLHLL",
}

// table maps length -> sequence -> predicted next category. Built once at
// process start, immutable afterwards.
var table = buildTable()

func buildTable() map[int]map[string]models.Category {
	t := make(map[int]map[string]models.Category)
	for _, p := range streakBreakCatalogue {
		byLen, ok := t[len(p)]
		if !ok {
			byLen = make(map[string]models.Category)
			t[len(p)] = byLen
		}
		if _, seen := byLen[p]; seen {
			continue // first-seen-wins
		}
		if p[0] == 'H' {
			byLen[p] = models.CategoryLow
		} else {
			byLen[p] = models.CategoryHigh
		}
	}
	return t
}

// Match looks up the most recent categories of an oldest-first sequence
// against the catalogue, longest length first. On a hit it returns the
// predicted next category, the matched length and the matched sequence.
func Match(natural []models.Category) (models.Category, int, string, bool) {
	for length := maxLookupLen; length >= minLookupLen; length-- {
		if len(natural) < length {
			continue
		}
		key := suffixKey(natural, length)
		if predicted, ok := table[length][key]; ok {
			return predicted, length, key, true
		}
	}
	return "", 0, "", false
}

// suffixKey renders the last n categories as an "H"/"L" string.
func suffixKey(natural []models.Category, n int) string {
	buf := make([]byte, 0, n)
	for _, c := range natural[len(natural)-n:] {
		buf = append(buf, c[0])
	}
	return string(buf)
}
