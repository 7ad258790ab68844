package review

import (
	"hash/fnv"
	"strings"
)

const (
	duplicateWindow    = 5
	duplicateMinLength = 50
)

// Duplicate locates a repeated block by its 1-indexed first lines.
type Duplicate struct {
	Line      int
	FirstSeen int
}

// FindDuplicateBlock slides a five-line window over lines and returns the
// first window whose text already appeared and whose trimmed text is longer
// than fifty characters. Scanning stops at the first hit, so later
// duplicates in the same file are not reported.
func FindDuplicateBlock(lines []string) (Duplicate, bool) {
	seen := make(map[uint64]int)
	for i := 0; i+duplicateWindow <= len(lines); i++ {
		block := strings.Join(lines[i:i+duplicateWindow], "\n")
		key := blockHash(block)

		first, ok := seen[key]
		if !ok {
			seen[key] = i
			continue
		}
		if len(strings.TrimSpace(block)) <= duplicateMinLength {
			continue
		}
		if strings.Join(lines[first:first+duplicateWindow], "\n") != block {
			continue
		}
		return Duplicate{Line: i + 1, FirstSeen: first + 1}, true
	}
	return Duplicate{}, false
}

func blockHash(block string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(block))
	return h.Sum64()
}
