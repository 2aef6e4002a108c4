package schedule

import (
	"fmt"
	"sort"
	"time"

	"mastermind/pkg/models"
)

type slot struct {
	day  time.Time
	hour int
}

// DistributePosts assigns a weekday/business-hour slot to each seed and
// returns the scheduled posts in chronological order. Seeds keep their
// given order: seed i receives the i-th earliest selected slot. Each post
// gets a random minute offset, a sequential "P<n>" id and a fresh thread id.
func (s *Scheduler) DistributePosts(weekStart time.Time, seeds []PostSeed) ([]models.ContentItem, error) {
	slots := weekdaySlots(weekStart)
	if len(seeds) > len(slots) {
		return nil, &InsufficientSlotsError{Requested: len(seeds), Available: len(slots)}
	}

	s.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	selected := slots[:len(seeds)]
	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].day.Equal(selected[j].day) {
			return selected[i].day.Before(selected[j].day)
		}
		return selected[i].hour < selected[j].hour
	})

	posts := make([]models.ContentItem, 0, len(seeds))
	for i, sl := range selected {
		seed := seeds[i]
		postTime := time.Date(
			sl.day.Year(), sl.day.Month(), sl.day.Day(),
			sl.hour, s.rng.Intn(60), 0, 0, sl.day.Location(),
		)
		posts = append(posts, models.ContentItem{
			ID:         fmt.Sprintf("P%d", i+1),
			Date:       postTime,
			Persona:    seed.Persona,
			Username:   seed.Username,
			Subreddit:  seed.Subreddit,
			Title:      seed.Title,
			Content:    seed.Content,
			Type:       models.ContentTypePost,
			ThreadID:   fmt.Sprintf("thread_%d", i+1),
			KeywordIDs: seed.KeywordIDs,
		})
	}
	return posts, nil
}

// weekdaySlots returns every Monday–Friday posting-hour slot in the week
// beginning at weekStart.
func weekdaySlots(weekStart time.Time) []slot {
	slots := make([]slot, 0, 5*len(postingHours))
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset)
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, hour := range postingHours {
			slots = append(slots, slot{day: day, hour: hour})
		}
	}
	return slots
}
