package validate

import (
	"strings"
	"testing"
	"time"

	"mastermind/pkg/models"
)

var weekStart = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func post(day, hour int, subreddit, persona, title string) models.CalendarEntry {
	d := weekStart.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
	return models.CalendarEntry{
		PostID:    "P1",
		Date:      d,
		Time:      d.Format("03:04 PM"),
		Type:      models.ContentTypePost,
		Persona:   persona,
		Subreddit: subreddit,
		Title:     title,
		ThreadID:  "",
	}
}

func calendarOf(entries ...models.CalendarEntry) models.Calendar {
	return models.Calendar{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 7),
		Entries:   entries,
	}
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestValidateEmptyCalendarPerfectScore(t *testing.T) {
	var v Validator
	score, warnings := v.Validate(calendarOf())
	if score != 10.0 {
		t.Fatalf("empty calendar scored %.1f, want 10.0", score)
	}
	if len(warnings) != 0 {
		t.Fatalf("empty calendar produced warnings: %v", warnings)
	}
}

func TestValidateBalancedCalendarPerfectScore(t *testing.T) {
	a := post(0, 9, "startups", "Riley Hart", "how we cut deck prep time")
	b := post(2, 14, "PowerPoint", "Casey Lowe", "favorite template sources")
	c := post(4, 16, "productivity", "Jordan Bell", "weekly review rituals")
	var v Validator
	score, warnings := v.Validate(calendarOf(a, b, c))
	if score != 10.0 {
		t.Fatalf("balanced calendar scored %.1f, warnings %v", score, warnings)
	}
}

func TestSubredditGapPenalty(t *testing.T) {
	// 4 posts in startups vs 1 in PowerPoint: gap 3 > 2 -> 1.5
	entries := []models.CalendarEntry{
		post(0, 9, "startups", "A", "t one"),
		post(1, 9, "startups", "B", "t two"),
		post(2, 9, "startups", "C", "t three"),
		post(3, 9, "startups", "D", "t four"),
		post(4, 9, "PowerPoint", "E", "t five"),
	}
	var v Validator
	score, warnings := v.Validate(calendarOf(entries...))
	if !hasWarning(warnings, "Uneven subreddit distribution") {
		t.Fatalf("missing uneven-distribution warning: %v", warnings)
	}
	// 1.5 distribution + 0.5 low reply ratio
	if score > 8.0 {
		t.Fatalf("score %.1f too high for uneven distribution", score)
	}
}

func TestSubredditConcentrationPenalty(t *testing.T) {
	// 3 posts in one subreddit, none elsewhere: gap 0, maxCount 3 -> 1.0
	entries := []models.CalendarEntry{
		post(0, 9, "startups", "A", "alpha launch notes"),
		post(1, 9, "startups", "B", "beta retro writeup"),
		post(2, 9, "startups", "C", "gamma hiring story"),
	}
	var v Validator
	_, warnings := v.Validate(calendarOf(entries...))
	if !hasWarning(warnings, "has 3 posts") {
		t.Fatalf("missing concentration warning: %v", warnings)
	}
}

func TestTopicOverlapPenalty(t *testing.T) {
	// identical titles on the same day -> overlap 1.0 > 0.4
	a := post(0, 9, "startups", "A", "best ai presentation maker")
	b := post(0, 14, "PowerPoint", "B", "best ai presentation maker")
	var v Validator
	score, warnings := v.Validate(calendarOf(a, b))
	if !hasWarning(warnings, "Similar topics") {
		t.Fatalf("missing similar-topics warning: %v", warnings)
	}
	if score > 9.5 {
		t.Fatalf("score %.1f too high for topic overlap", score)
	}
}

func TestTopicOverlapCapped(t *testing.T) {
	// 4 identical same-day titles -> 6 pairs * 0.5 capped at 1.5
	entries := []models.CalendarEntry{}
	for i := 0; i < 4; i++ {
		// hours 9, 13, 17, 21: same day, gaps wide enough to dodge the
		// timing check
		e := post(0, 9+i*4, "startups", "P"+string(rune('A'+i)), "identical title words")
		entries = append(entries, e)
	}
	v1 := Validator{}
	score, _ := v1.Validate(calendarOf(entries...))

	three := Validator{}
	scoreThree, _ := three.Validate(calendarOf(entries[:3]...))
	// 3 titles -> 3 pairs, already at the 1.5 cap, so adding a 4th title
	// must not lower the score further via this check
	if score < scoreThree-0.001 {
		t.Fatalf("overlap penalty not capped: 4 titles %.2f vs 3 titles %.2f", score, scoreThree)
	}
}

func TestPersonaRunPenalty(t *testing.T) {
	entries := []models.CalendarEntry{
		post(0, 9, "startups", "Riley Hart", "one"),
		post(1, 9, "PowerPoint", "Riley Hart", "two"),
		post(2, 9, "productivity", "Riley Hart", "three"),
	}
	var v Validator
	_, warnings := v.Validate(calendarOf(entries...))
	if !hasWarning(warnings, "Same persona (Riley Hart) posts 3 times") {
		t.Fatalf("missing persona-run warning: %v", warnings)
	}
}

func TestTimingPenaltyCapped(t *testing.T) {
	// five posts 1 hour apart: four gaps * 0.3 capped at 1.0
	entries := []models.CalendarEntry{}
	for i := 0; i < 5; i++ {
		entries = append(entries, post(0, 9+i, "startups", "P"+string(rune('A'+i)), "title "+string(rune('a'+i))))
	}
	var v Validator
	_, warnings := v.Validate(calendarOf(entries...))
	n := 0
	for _, w := range warnings {
		if strings.Contains(w, "too close together") {
			n++
		}
	}
	if n != 4 {
		t.Fatalf("expected 4 timing warnings, got %d: %v", n, warnings)
	}
}

func TestReplyBeforePostPenalty(t *testing.T) {
	p := post(2, 9, "startups", "Riley Hart", "a post")
	p.ThreadID = "thread_1"
	early := models.CalendarEntry{
		CommentID:    "C1",
		Date:         weekStart.Add(1 * time.Hour),
		Type:         models.ContentTypeReply,
		Persona:      "Casey Lowe",
		Subreddit:    "startups",
		ParentPostID: "P1",
		ThreadID:     "thread_1",
	}
	var v Validator
	score, warnings := v.Validate(calendarOf(early, p))
	if !hasWarning(warnings, "Reply scheduled before original post") {
		t.Fatalf("missing reply-before-post warning: %v", warnings)
	}
	if score > 9.0 {
		t.Fatalf("score %.1f too high for broken conversation flow", score)
	}
}

func TestDuplicateReplyPersonaPenalty(t *testing.T) {
	p := post(0, 9, "startups", "Riley Hart", "a post")
	p.ThreadID = "thread_1"
	r1 := models.CalendarEntry{
		CommentID: "C1", Date: p.Date.Add(2 * time.Hour), Type: models.ContentTypeReply,
		Persona: "Casey Lowe", Subreddit: "startups", ParentPostID: "P1", ThreadID: "thread_1",
	}
	r2 := models.CalendarEntry{
		CommentID: "C2", Date: p.Date.Add(5 * time.Hour), Type: models.ContentTypeReply,
		Persona: "Casey Lowe", Subreddit: "startups", ParentPostID: "P1", ThreadID: "thread_1",
	}
	var v Validator
	_, warnings := v.Validate(calendarOf(p, r1, r2))
	if !hasWarning(warnings, "Same persona replies multiple times") {
		t.Fatalf("missing duplicate-replier warning: %v", warnings)
	}
}

func TestReplyRatioPenalties(t *testing.T) {
	// low ratio: 3 posts, 1 reply -> 0.33 < 0.5
	p1 := post(0, 9, "startups", "A", "first idea")
	p2 := post(1, 14, "PowerPoint", "B", "second thought")
	p3 := post(3, 16, "productivity", "C", "third plan")
	p1.ThreadID = "thread_1"
	r := models.CalendarEntry{
		CommentID: "C1", Date: p1.Date.Add(3 * time.Hour), Type: models.ContentTypeReply,
		Persona: "D", Subreddit: "startups", ParentPostID: "P1", ThreadID: "thread_1",
	}
	var v Validator
	_, warnings := v.Validate(calendarOf(p1, p2, p3, r))
	if !hasWarning(warnings, "Low reply ratio") {
		t.Fatalf("missing low-ratio warning: %v", warnings)
	}

	// high ratio: 1 post, 4 replies -> 4 > 3
	entries := []models.CalendarEntry{p1}
	for i := 0; i < 4; i++ {
		entries = append(entries, models.CalendarEntry{
			CommentID: "C" + string(rune('1'+i)),
			Date:      p1.Date.Add(time.Duration(i+2) * time.Hour),
			Type:      models.ContentTypeReply,
			Persona:   "R" + string(rune('A'+i)),
			Subreddit: "startups", ParentPostID: "P1", ThreadID: "thread_1",
		})
	}
	var v2 Validator
	_, warnings2 := v2.Validate(calendarOf(entries...))
	if !hasWarning(warnings2, "High reply ratio") {
		t.Fatalf("missing high-ratio warning: %v", warnings2)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	// pile every penalty together and confirm the clamp holds
	entries := []models.CalendarEntry{}
	for i := 0; i < 5; i++ {
		e := post(0, 9, "startups", "Riley Hart", "identical title words")
		e.Date = e.Date.Add(time.Duration(i) * time.Hour)
		e.ThreadID = "thread_1"
		entries = append(entries, e)
	}
	early := models.CalendarEntry{
		CommentID: "C1", Date: weekStart.Add(-2 * time.Hour), Type: models.ContentTypeReply,
		Persona: "Riley Hart", Subreddit: "startups", ParentPostID: "P1", ThreadID: "thread_1",
	}
	entries = append(entries, early)
	var v Validator
	score, _ := v.Validate(calendarOf(entries...))
	if score < 0 {
		t.Fatalf("score %.2f below zero", score)
	}
}

func TestValidateRepeatable(t *testing.T) {
	cal := calendarOf(
		post(0, 9, "startups", "A", "first idea"),
		post(0, 10, "startups", "A", "first idea"),
	)
	var v Validator
	s1, w1 := v.Validate(cal)
	s2, w2 := v.Validate(cal)
	if s1 != s2 || len(w1) != len(w2) {
		t.Fatalf("repeated Validate differs: %.2f/%d vs %.2f/%d", s1, len(w1), s2, len(w2))
	}
}
