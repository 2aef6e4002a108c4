package schedule

import (
	"sort"
	"time"

	"mastermind/pkg/models"
)

// CreateCalendar merges posts and replies into one chronologically sorted
// calendar. The sort is stable, so items sharing a timestamp keep their
// insertion order (posts before replies).
func (s *Scheduler) CreateCalendar(weekStart time.Time, posts, replies []models.ContentItem) models.Calendar {
	all := make([]models.ContentItem, 0, len(posts)+len(replies))
	all = append(all, posts...)
	all = append(all, replies...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})

	entries := make([]models.CalendarEntry, 0, len(all))
	subreddits := make(map[string]struct{})
	for _, item := range all {
		entry := models.CalendarEntry{
			Date:            item.Date,
			Time:            item.Date.Format("03:04 PM"),
			Type:            item.Type,
			Persona:         item.Persona,
			Username:        item.Username,
			Subreddit:       item.Subreddit,
			Title:           item.Title,
			Content:         item.Content,
			ParentPostID:    item.ParentPostID,
			ParentCommentID: item.ParentCommentID,
			ThreadID:        item.ThreadID,
			KeywordIDs:      item.KeywordIDs,
		}
		switch item.Type {
		case models.ContentTypePost:
			entry.PostID = item.ID
		case models.ContentTypeReply:
			entry.CommentID = item.ID
		}
		entries = append(entries, entry)
		subreddits[item.Subreddit] = struct{}{}
	}

	used := make([]string, 0, len(subreddits))
	for sub := range subreddits {
		used = append(used, sub)
	}
	sort.Strings(used)

	return models.Calendar{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 7),
		Entries:   entries,
		Metadata: models.CalendarMetadata{
			TotalPosts:     len(posts),
			TotalReplies:   len(replies),
			SubredditsUsed: used,
		},
	}
}
