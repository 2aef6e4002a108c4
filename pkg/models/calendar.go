package models

import "time"

// ContentType distinguishes top-level posts from replies.
type ContentType string

const (
	ContentTypePost  ContentType = "post"
	ContentTypeReply ContentType = "reply"
)

// ContentItem is a scheduled post or reply. Items are created once by the
// scheduler and never mutated afterwards.
type ContentItem struct {
	// ID is "P<n>" for posts and "C<n>" for replies, unique within a calendar.
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Persona   string      `json:"persona"`
	Username  string      `json:"username"`
	Subreddit string      `json:"subreddit"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Type      ContentType `json:"content_type"`
	// ParentPostID is set on every reply and names the post it belongs to.
	ParentPostID string `json:"parent_post_id,omitempty"`
	// ParentCommentID is set when a reply answers another reply rather than
	// the post directly.
	ParentCommentID string `json:"parent_comment_id,omitempty"`
	// ThreadID is shared by a post and all replies beneath it.
	ThreadID   string   `json:"thread_id,omitempty"`
	KeywordIDs []string `json:"keyword_ids,omitempty"`
}

// CalendarEntry is the flattened presentation view of a ContentItem.
type CalendarEntry struct {
	PostID    string    `json:"post_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	Date      time.Time `json:"date"`
	// Time is the 12-hour display form of Date, e.g. "02:30 PM".
	Time            string      `json:"time"`
	Type            ContentType `json:"type"`
	Persona         string      `json:"persona"`
	Username        string      `json:"username"`
	Subreddit       string      `json:"subreddit"`
	Title           string      `json:"title"`
	Content         string      `json:"content"`
	ParentPostID    string      `json:"parent_post_id,omitempty"`
	ParentCommentID string      `json:"parent_comment_id,omitempty"`
	ThreadID        string      `json:"thread_id,omitempty"`
	KeywordIDs      []string    `json:"keyword_ids,omitempty"`
}

// CalendarMetadata summarizes an assembled calendar.
type CalendarMetadata struct {
	TotalPosts     int      `json:"total_posts"`
	TotalReplies   int      `json:"total_replies"`
	SubredditsUsed []string `json:"subreddits_used"`
}

// Calendar is one week of scheduled content, entries sorted by timestamp.
type Calendar struct {
	WeekStart time.Time        `json:"week_start"`
	WeekEnd   time.Time        `json:"week_end"`
	Entries   []CalendarEntry  `json:"entries"`
	Metadata  CalendarMetadata `json:"metadata"`
}
