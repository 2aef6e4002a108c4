// Package validate scores assembled calendars for structural quality. The
// checks are purely statistical; no natural-language judgment is involved.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"mastermind/pkg/models"
)

// Validator runs the quality checks over a calendar. The zero value is
// ready to use; Validate may be called repeatedly.
type Validator struct {
	warnings []string
}

// Validate scores the calendar on a 0–10 scale and returns the score with
// any human-readable warnings. Each check is independent and contributes a
// penalty; checks never mutate the calendar and Validate never fails, even
// on an empty calendar.
func (v *Validator) Validate(cal models.Calendar) (float64, []string) {
	v.warnings = nil

	score := 10.0
	score -= v.checkSubredditDistribution(cal)
	score -= v.checkTopicOverlap(cal)
	score -= v.checkPersonaPatterns(cal)
	score -= v.checkTimingIssues(cal)
	score -= v.checkConversationFlow(cal)
	score -= v.checkReplyDistribution(cal)

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, v.warnings
}

func (v *Validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// checkSubredditDistribution penalizes uneven spread of posts across
// subreddits: 1.5 when the max/min gap exceeds 2, else 1.0 when any single
// subreddit carries more than 2 posts.
func (v *Validator) checkSubredditDistribution(cal models.Calendar) float64 {
	counts := map[string]int{}
	for _, e := range cal.Entries {
		if e.Type == models.ContentTypePost {
			counts[e.Subreddit]++
		}
	}
	if len(counts) == 0 {
		return 0
	}

	maxCount, minCount := 0, -1
	maxSub := ""
	for sub, c := range counts {
		if c > maxCount || (c == maxCount && sub < maxSub) {
			maxCount, maxSub = c, sub
		}
		if minCount < 0 || c < minCount {
			minCount = c
		}
	}

	if maxCount-minCount > 2 {
		v.warnf("Uneven subreddit distribution: %s. Consider spreading posts more evenly.", formatCounts(counts))
		return 1.5
	}
	if maxCount > 2 {
		v.warnf("Subreddit %s has %d posts. Consider limiting to 1-2 posts per subreddit per week.", maxSub, maxCount)
		return 1.0
	}
	return 0
}

// checkTopicOverlap penalizes same-day posts whose titles share more than
// 40% of their words: 0.5 per colliding pair, capped at 1.5.
func (v *Validator) checkTopicOverlap(cal models.Calendar) float64 {
	dailyTopics := map[string][]string{}
	var days []string
	for _, e := range cal.Entries {
		if e.Type != models.ContentTypePost {
			continue
		}
		day := e.Date.Format("2006-01-02")
		if _, ok := dailyTopics[day]; !ok {
			days = append(days, day)
		}
		dailyTopics[day] = append(dailyTopics[day], strings.ToLower(e.Title))
	}

	penalty := 0.0
	for _, day := range days {
		topics := dailyTopics[day]
		for i, topic1 := range topics {
			for _, topic2 := range topics[i+1:] {
				if wordOverlap(topic1, topic2) > 0.4 {
					v.warnf("Similar topics on %s: '%s' and '%s'", day, topic1, topic2)
					penalty += 0.5
				}
			}
		}
	}
	if penalty > 1.5 {
		penalty = 1.5
	}
	return penalty
}

// wordOverlap is the shared-word count divided by the larger title's
// distinct word count.
func wordOverlap(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}
	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	return float64(shared) / float64(denom)
}

func wordSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

// checkPersonaPatterns penalizes the same persona posting 3+ times in a
// row: flat 0.5 regardless of run length.
func (v *Validator) checkPersonaPatterns(cal models.Calendar) float64 {
	var seq []string
	for _, e := range cal.Entries {
		if e.Type == models.ContentTypePost {
			seq = append(seq, e.Persona)
		}
	}

	consecutive := 1
	maxConsecutive := 1
	runPersona := ""
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			consecutive++
			if consecutive > maxConsecutive {
				maxConsecutive = consecutive
				runPersona = seq[i]
			}
		} else {
			consecutive = 1
		}
	}

	if maxConsecutive > 2 {
		v.warnf("Same persona (%s) posts %d times consecutively. Consider rotating personas more.", runPersona, maxConsecutive)
		return 0.5
	}
	return 0
}

// checkTimingIssues penalizes consecutive posts less than 4 hours apart:
// 0.3 per occurrence, capped at 1.0.
func (v *Validator) checkTimingIssues(cal models.Calendar) float64 {
	var posts []models.CalendarEntry
	for _, e := range cal.Entries {
		if e.Type == models.ContentTypePost {
			posts = append(posts, e)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.Before(posts[j].Date)
	})

	penalty := 0.0
	for i := 0; i+1 < len(posts); i++ {
		diff := posts[i+1].Date.Sub(posts[i].Date).Hours()
		if diff < 4 {
			v.warnf("Posts scheduled too close together: %s and %s (%.1f hours apart)",
				posts[i].Date.Format("2006-01-02 15:04"),
				posts[i+1].Date.Format("2006-01-02 15:04"),
				diff)
			penalty += 0.3
		}
	}
	if penalty > 1.0 {
		penalty = 1.0
	}
	return penalty
}

// checkConversationFlow penalizes replies scheduled before their thread's
// post (1.0 each) and the same persona replying twice in one thread (0.5),
// capped at 2.0 total.
func (v *Validator) checkConversationFlow(cal models.Calendar) float64 {
	threads := map[string][]models.CalendarEntry{}
	var order []string
	for _, e := range cal.Entries {
		if e.ThreadID == "" {
			continue
		}
		if _, ok := threads[e.ThreadID]; !ok {
			order = append(order, e.ThreadID)
		}
		threads[e.ThreadID] = append(threads[e.ThreadID], e)
	}

	penalty := 0.0
	for _, threadID := range order {
		var posts, replies []models.CalendarEntry
		for _, e := range threads[threadID] {
			switch e.Type {
			case models.ContentTypePost:
				posts = append(posts, e)
			case models.ContentTypeReply:
				replies = append(replies, e)
			}
		}
		if len(posts) == 0 || len(replies) == 0 {
			continue
		}

		firstPost := posts[0]
		for _, p := range posts[1:] {
			if p.Date.Before(firstPost.Date) {
				firstPost = p
			}
		}
		for _, reply := range replies {
			if reply.Date.Before(firstPost.Date) {
				v.warnf("Reply scheduled before original post in thread %s", threadID)
				penalty += 1.0
			}
		}

		seen := map[string]struct{}{}
		duplicate := false
		for _, reply := range replies {
			if _, ok := seen[reply.Persona]; ok {
				duplicate = true
				break
			}
			seen[reply.Persona] = struct{}{}
		}
		if duplicate {
			v.warnf("Same persona replies multiple times in thread %s", threadID)
			penalty += 0.5
		}
	}
	if penalty > 2.0 {
		penalty = 2.0
	}
	return penalty
}

// checkReplyDistribution penalizes implausible reply ratios: 0.5 below
// 0.5 replies per post, 0.5 above 3 replies per post.
func (v *Validator) checkReplyDistribution(cal models.Calendar) float64 {
	posts, replies := 0, 0
	for _, e := range cal.Entries {
		switch e.Type {
		case models.ContentTypePost:
			posts++
		case models.ContentTypeReply:
			replies++
		}
	}
	if posts == 0 {
		return 0
	}

	ratio := float64(replies) / float64(posts)
	if ratio < 0.5 {
		v.warnf("Low reply ratio: %d replies for %d posts. Consider adding more engagement.", replies, posts)
		return 0.5
	}
	if ratio > 3 {
		v.warnf("High reply ratio: %d replies for %d posts. May look unnatural.", replies, posts)
		return 0.5
	}
	return 0
}

// formatCounts renders subreddit counts deterministically for warnings.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
