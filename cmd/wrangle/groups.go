package main

import (
	"sort"
	"strings"
)

// Groups is the set of instruction groups an architecture's operations
// belong to.
type Groups map[string]struct{}

func (gs Groups) Has(g string) bool {
	_, ok := gs[g]
	return ok
}

func (gs Groups) Add(g string) {
	gs[g] = struct{}{}
}

func (gs Groups) Sorted() []string {
	ret := make([]string, 0, len(gs))
	for g := range gs {
		ret = append(ret, g)
	}
	sort.Strings(ret)
	return ret
}

func (gs Groups) String() string {
	return strings.Join(gs.Sorted(), ", ")
}
