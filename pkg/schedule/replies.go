package schedule

import (
	"fmt"
	"time"

	"mastermind/pkg/models"
)

// fallbackReplies is the fixed pool of generic encouragement phrases used
// for replies after the first one in a thread.
var fallbackReplies = []string{
	"Thanks for sharing! I've had similar experiences.",
	"Great point! I've found this helpful too.",
	"This is exactly what I needed to hear.",
	"Same here! This has been a game changer for me.",
	"Appreciate the insight! Going to try this out.",
	"This resonates with me. Thanks for the tip!",
}

// ScheduleReplies attaches replies to posts with natural timing. Posts
// without a seed receive no replies. Reply IDs are "C<n>", sequential
// across the whole calendar. Every seed key must reference a known post.
func (s *Scheduler) ScheduleReplies(posts []models.ContentItem, seeds map[string]ReplySeed) ([]models.ContentItem, error) {
	known := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		known[p.ID] = struct{}{}
	}
	for id := range seeds {
		if _, ok := known[id]; !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("reply seed references unknown post %q", id)}
		}
	}

	replies := make([]models.ContentItem, 0, len(seeds))
	commentCounter := 1

	for _, post := range posts {
		seed, ok := seeds[post.ID]
		if !ok {
			continue
		}

		// 1 reply (70%), 2 replies (20%), 3 replies (10%)
		numReplies := 1
		switch r := s.rng.Float64(); {
		case r < 0.1:
			numReplies = 3
		case r < 0.3:
			numReplies = 2
		}

		// ledger of replies already attached to this post, in order
		var ledger []models.ContentItem

		for replyNum := 0; replyNum < numReplies; replyNum++ {
			var base time.Time
			var hoursDelay int
			if replyNum == 0 {
				base = post.Date
				hoursDelay = 1 + s.rng.Intn(24)
			} else {
				base = ledger[len(ledger)-1].Date
				hoursDelay = 1 + s.rng.Intn(6)
			}
			replyTime := base.Add(time.Duration(hoursDelay)*time.Hour + time.Duration(s.rng.Intn(60))*time.Minute)

			// keep the reply inside the post's week; the reclamp deliberately
			// abandons the previous-reply base for this one draw
			weekEnd := post.Date.AddDate(0, 0, 7)
			if !replyTime.Before(weekEnd) {
				replyTime = post.Date.Add(time.Duration(1+s.rng.Intn(12)) * time.Hour)
			}

			// 30% chance a later reply answers a prior comment instead of
			// the post itself
			parentCommentID := ""
			if replyNum > 0 && len(ledger) > 0 && s.rng.Float64() < 0.3 {
				parentCommentID = ledger[s.rng.Intn(len(ledger))].ID
			}

			var replyPersona, replyUsername, replyContent string
			if replyNum == 0 {
				replyPersona = seed.Persona
				replyUsername = seed.Username
				replyContent = seed.Content
			} else {
				replyPersona, replyUsername = s.pickReplyAuthor(post, ledger, seed)
				replyContent = fallbackReplies[s.rng.Intn(len(fallbackReplies))]
			}

			reply := models.ContentItem{
				ID:              fmt.Sprintf("C%d", commentCounter),
				Date:            replyTime,
				Persona:         replyPersona,
				Username:        replyUsername,
				Subreddit:       post.Subreddit,
				Title:           "",
				Content:         replyContent,
				Type:            models.ContentTypeReply,
				ParentPostID:    post.ID,
				ParentCommentID: parentCommentID,
				ThreadID:        post.ThreadID,
			}
			replies = append(replies, reply)
			ledger = append(ledger, reply)
			commentCounter++
		}
	}
	return replies, nil
}

// pickReplyAuthor chooses a persona different from the post author and,
// when possible, from the immediately preceding reply's author. It falls
// back to the seed author when nobody else is eligible.
func (s *Scheduler) pickReplyAuthor(post models.ContentItem, ledger []models.ContentItem, seed ReplySeed) (name, username string) {
	available := make([]models.Persona, 0, len(s.personas))
	for _, p := range s.personas {
		if p.Username == post.Username {
			continue
		}
		if len(ledger) > 0 && p.Username == ledger[len(ledger)-1].Username {
			continue
		}
		available = append(available, p)
	}
	if len(available) == 0 {
		return seed.Persona, seed.Username
	}
	pick := available[s.rng.Intn(len(available))]
	return pick.Name, pick.Username
}
