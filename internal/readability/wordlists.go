package readability

import (
	_ "embed"
	"strings"
	"sync"
)

var (
	//go:embed wordlists/dale_chall.txt
	daleChallData string

	//go:embed wordlists/spache.txt
	spacheData string
)

var (
	listsOnce     sync.Once
	daleChallList map[string]struct{}
	spacheList    map[string]struct{}
)

func loadLists() {
	listsOnce.Do(func() {
		daleChallList = parseList(daleChallData)
		spacheList = parseList(spacheData)
	})
}

func parseList(data string) map[string]struct{} {
	fields := strings.Fields(data)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// isDaleChallEasy reports whether word is on the Dale-Chall familiar list.
func isDaleChallEasy(word string) bool {
	loadLists()
	_, ok := daleChallList[word]
	return ok
}

// isSpacheEasy reports whether word is on the Spache list.
func isSpacheEasy(word string) bool {
	loadLists()
	_, ok := spacheList[word]
	return ok
}
