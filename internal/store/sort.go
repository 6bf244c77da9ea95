package store

import (
	"sort"

	"github.com/agromatch/agromatch/internal/farm"
)

// Secondary indexes return members in arbitrary order; listings stay
// deterministic by sorting on the generated IDs.

func sortJobsByID(jobs []*farm.Job) {
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
}

func sortMatchesByID(matches []*farm.Match) {
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
}

func sortUsersByID(users []*farm.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
