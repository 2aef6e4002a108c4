package schedule

import (
	"math/rand"

	"mastermind/pkg/models"
)

// Posting hours used when laying posts out across a week. Business hours
// tend to get better engagement; weekends are skipped entirely.
var postingHours = []int{9, 11, 14, 16, 18}

// PostSeed is externally generated post content waiting for a slot.
type PostSeed struct {
	Title      string
	Content    string
	Persona    string
	Username   string
	Subreddit  string
	Query      string
	KeywordIDs []string
}

// ReplySeed is externally generated first-reply content for one post.
type ReplySeed struct {
	Content  string
	Persona  string
	Username string
}

// Scheduler distributes posts and replies across one week. A fresh
// Scheduler is constructed per request; all randomness flows through the
// injected rand.Rand so runs are reproducible under a fixed seed.
type Scheduler struct {
	postsPerWeek    int
	subreddits      []string
	personas        []models.Persona
	maxPerSubreddit int
	rng             *rand.Rand
}

// New validates the inputs and returns a Scheduler.
func New(postsPerWeek int, subreddits []string, personas []models.Persona, rng *rand.Rand) (*Scheduler, error) {
	if postsPerWeek <= 0 {
		return nil, &ConfigError{Reason: "posts_per_week must be positive"}
	}
	if len(subreddits) == 0 {
		return nil, &ConfigError{Reason: "no subreddits configured"}
	}
	if len(personas) == 0 {
		return nil, &ConfigError{Reason: "no personas configured"}
	}
	if rng == nil {
		return nil, &ConfigError{Reason: "nil random source"}
	}
	max := postsPerWeek/len(subreddits) + 1
	if max < 1 {
		max = 1
	}
	return &Scheduler{
		postsPerWeek:    postsPerWeek,
		subreddits:      subreddits,
		personas:        personas,
		maxPerSubreddit: max,
		rng:             rng,
	}, nil
}

// AssignSubreddits assigns a subreddit to each of n posts, avoiding
// overposting. Selection is weighted toward less-used subreddits; a
// subreddit that reaches the per-week ceiling drops out of the pool until
// every subreddit has reached it, at which point the pool resets.
func (s *Scheduler) AssignSubreddits(n int) []string {
	assignments := make([]string, 0, n)
	counts := make(map[string]int, len(s.subreddits))
	for _, sub := range s.subreddits {
		counts[sub] = 0
	}

	for i := 0; i < n; i++ {
		available := make([]string, 0, len(s.subreddits))
		for _, sub := range s.subreddits {
			if counts[sub] < s.maxPerSubreddit {
				available = append(available, sub)
			}
		}
		if len(available) == 0 {
			// everyone is at the ceiling; reset and use all
			available = s.subreddits
		}

		weights := make([]float64, len(available))
		for j, sub := range available {
			weights[j] = 1.0 / float64(counts[sub]+1)
		}
		selected := available[s.weightedIndex(weights)]

		assignments = append(assignments, selected)
		counts[selected]++
	}
	return assignments
}

// AssignPersonas assigns a persona username to each of n posts. Personas
// rotate round-robin for near-equal coverage, then the whole sequence is
// shuffled once to avoid predictable ordering.
func (s *Scheduler) AssignPersonas(n int) []string {
	assignments := make([]string, 0, n)
	for i := 0; i < n; i++ {
		assignments = append(assignments, s.personas[i%len(s.personas)].Username)
	}
	s.rng.Shuffle(len(assignments), func(i, j int) {
		assignments[i], assignments[j] = assignments[j], assignments[i]
	})
	return assignments
}

// PersonaByUsername looks a persona up by its username.
func (s *Scheduler) PersonaByUsername(username string) (models.Persona, bool) {
	for _, p := range s.personas {
		if p.Username == username {
			return p, true
		}
	}
	return models.Persona{}, false
}

// weightedIndex picks an index with probability proportional to weights[i].
func (s *Scheduler) weightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := s.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}
