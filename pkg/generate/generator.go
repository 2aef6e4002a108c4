package generate

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"mastermind/pkg/logger"
	"mastermind/pkg/models"
	"mastermind/pkg/schedule"
	"mastermind/pkg/validate"
)

// Generator orchestrates one calendar generation run: content generation,
// scheduling, assembly and quality scoring.
type Generator struct {
	content   ContentSource
	validator validate.Validator
}

// NewGenerator builds a Generator around the given content source.
func NewGenerator(content ContentSource) *Generator {
	return &Generator{content: content}
}

// GenerateCalendar produces a full weekly calendar for the request. Post
// generation failures abort the run; reply generation failures degrade to
// posts without replies.
func (g *Generator) GenerateCalendar(ctx context.Context, req models.CalendarRequest) (models.CalendarResponse, error) {
	weekStart := resolveWeekStart(req.WeekStart)

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sched, err := schedule.New(req.PostsPerWeek, req.Subreddits, req.Personas, rng)
	if err != nil {
		return models.CalendarResponse{}, err
	}

	subreddits := sched.AssignSubreddits(req.PostsPerWeek)
	usernames := sched.AssignPersonas(req.PostsPerWeek)

	// generate post content, tracking what already exists to avoid overlap
	seeds := make([]schedule.PostSeed, 0, req.PostsPerWeek)
	var existing []models.ContentItem
	for i := 0; i < req.PostsPerWeek; i++ {
		keywordIDs, keywordTexts, query := pickKeywords(rng, req.Keywords)

		persona, ok := sched.PersonaByUsername(usernames[i])
		if !ok {
			return models.CalendarResponse{}, fmt.Errorf("unknown persona username %q", usernames[i])
		}

		pc, err := g.content.GeneratePost(ctx, req.CompanyInfo, persona, subreddits[i], query, keywordTexts, existing)
		if err != nil {
			return models.CalendarResponse{}, fmt.Errorf("failed to generate post %d/%d for %s in r/%s: %w",
				i+1, req.PostsPerWeek, persona.Name, subreddits[i], err)
		}

		seeds = append(seeds, schedule.PostSeed{
			Title:      pc.Title,
			Content:    pc.Content,
			Persona:    persona.Name,
			Username:   persona.Username,
			Subreddit:  subreddits[i],
			Query:      query,
			KeywordIDs: keywordIDs,
		})
		existing = append(existing, models.ContentItem{
			Title:     pc.Title,
			Content:   pc.Content,
			Persona:   persona.Name,
			Username:  persona.Username,
			Subreddit: subreddits[i],
			Type:      models.ContentTypePost,
		})
	}

	posts, err := sched.DistributePosts(weekStart, seeds)
	if err != nil {
		return models.CalendarResponse{}, err
	}

	// 70% of posts get a seed reply from a different persona
	replySeeds := map[string]schedule.ReplySeed{}
	for _, post := range posts {
		if rng.Float64() >= 0.7 {
			continue
		}
		replier, ok := pickReplier(rng, req.Personas, post.Username)
		if !ok {
			continue
		}

		var thread []models.ContentItem
		for _, p := range posts {
			if p.ThreadID == post.ThreadID {
				thread = append(thread, p)
			}
		}

		body, err := g.content.GenerateReply(ctx, req.CompanyInfo, replier, post, thread, post.Subreddit)
		if err != nil {
			logger.Warn("skipping_reply", "post", post.ID, "error", err)
			continue
		}
		if body == "" {
			logger.Warn("skipping_reply", "post", post.ID, "reason", "no content generated")
			continue
		}
		replySeeds[post.ID] = schedule.ReplySeed{
			Content:  body,
			Persona:  replier.Name,
			Username: replier.Username,
		}
	}

	replies, err := sched.ScheduleReplies(posts, replySeeds)
	if err != nil {
		return models.CalendarResponse{}, err
	}

	calendar := sched.CreateCalendar(weekStart, posts, replies)
	score, warnings := g.validator.Validate(calendar)
	if warnings == nil {
		warnings = []string{}
	}

	logger.Info("calendar_generated",
		"week_start", weekStart.Format(time.RFC3339),
		"posts", len(posts), "replies", len(replies), "score", score)

	return models.CalendarResponse{
		Calendar:     calendar,
		QualityScore: score,
		Warnings:     warnings,
	}, nil
}

// GenerateNextWeek generates a calendar for the week after currentWeekStart.
func (g *Generator) GenerateNextWeek(ctx context.Context, req models.CalendarRequest, currentWeekStart time.Time) (models.CalendarResponse, error) {
	next := currentWeekStart.AddDate(0, 0, 7)
	req.WeekStart = &next
	return g.GenerateCalendar(ctx, req)
}

// resolveWeekStart returns the requested week start, or the upcoming
// Monday at midnight UTC when none was given.
func resolveWeekStart(requested *time.Time) time.Time {
	if requested != nil {
		return *requested
	}
	now := time.Now().UTC()
	daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	next := now.AddDate(0, 0, daysUntilMonday)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
}

// pickKeywords samples 1–3 keywords for one post and joins their text into
// a topic query.
func pickKeywords(rng *rand.Rand, keywords []models.Keyword) (ids, texts []string, query string) {
	if len(keywords) == 0 {
		return nil, nil, ""
	}
	n := 1 + rng.Intn(3)
	if n > len(keywords) {
		n = len(keywords)
	}
	perm := rng.Perm(len(keywords))
	for _, idx := range perm[:n] {
		ids = append(ids, keywords[idx].ID)
		texts = append(texts, keywords[idx].Keyword)
	}
	for i, t := range texts {
		if i > 0 {
			query += ", "
		}
		query += t
	}
	return ids, texts, query
}

// pickReplier chooses a random persona other than the post author.
func pickReplier(rng *rand.Rand, personas []models.Persona, postAuthor string) (models.Persona, bool) {
	eligible := make([]models.Persona, 0, len(personas))
	for _, p := range personas {
		if p.Username != postAuthor {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return models.Persona{}, false
	}
	return eligible[rng.Intn(len(eligible))], true
}
