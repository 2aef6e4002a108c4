package generate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"mastermind/pkg/models"
)

const postSystemPrompt = "You are a helpful assistant that generates natural, authentic Reddit posts. Always return valid JSON only."

const replySystemPrompt = "You are a helpful assistant that generates natural, authentic Reddit replies. Return only the reply text, no formatting."

// buildPostPrompt assembles the persona, company and keyword context into
// one prompt asking for a JSON {title, content} object.
func buildPostPrompt(company models.CompanyInfo, persona models.Persona, subreddit, query string, keywords []string, existing []models.ContentItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s (Reddit username: %s), a %s with the following characteristics:\n", persona.Name, persona.Username, persona.Role)
	fmt.Fprintf(&b, "- Voice: %s\n", persona.Voice)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(persona.Interests, ", "))
	fmt.Fprintf(&b, "- Posting Style: %s", persona.PostingStyle)
	if persona.Backstory != "" {
		backstory := persona.Backstory
		if len(backstory) > 500 {
			backstory = backstory[:500] + "..."
		}
		fmt.Fprintf(&b, "\n\nYour background: %s", backstory)
	}

	fmt.Fprintf(&b, "\n\nYou are posting in r/%s about: %s", subreddit, query)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "\n\nTarget keywords to naturally incorporate: %s", strings.Join(keywords, ", "))
	}

	fmt.Fprintf(&b, "\n\nContext about your domain (DO NOT directly promote, just use for context):\n")
	fmt.Fprintf(&b, "- Company: %s (%s)\n", company.Name, company.Description)
	fmt.Fprintf(&b, "- Domain: %s\n", company.Domain)
	fmt.Fprintf(&b, "- Target Audience: %s\n", strings.Join(company.TargetAudience, ", "))

	b.WriteString(`
Create a natural, engaging Reddit post that:
1. Sounds like a real person asking a question or sharing an experience
2. Is valuable to the community (not promotional)
3. Relates to the topic above
4. Could naturally lead to discussions about tools/solutions in this space
5. Is NOT an obvious advertisement
6. Feels authentic and human-written
7. Write in YOUR voice - use your posting style naturally`)

	if len(existing) > 0 {
		recent := existing
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		titles := make([]string, 0, len(recent))
		for _, p := range recent {
			titles = append(titles, p.Title)
		}
		fmt.Fprintf(&b, "\n\nRecent post topics to avoid duplicating: %s", strings.Join(titles, ", "))
	}

	b.WriteString(`

CRITICAL INSTRUCTIONS:
- Return ONLY a valid JSON object
- No markdown code blocks
- No explanations before or after
- No newlines inside string values
- Example format:
{"title": "Your engaging question here", "content": "Your natural post content here in one paragraph"}

Return the JSON now:`)

	return b.String()
}

// buildReplyPrompt assembles a prompt asking for a plain-text reply to the
// parent post, aware of existing replies in the thread.
func buildReplyPrompt(company models.CompanyInfo, persona models.Persona, parent models.ContentItem, thread []models.ContentItem, subreddit string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a %s with the following characteristics:\n", persona.Name, persona.Role)
	fmt.Fprintf(&b, "- Voice: %s\n", persona.Voice)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(persona.Interests, ", "))
	fmt.Fprintf(&b, "- Posting Style: %s\n", persona.PostingStyle)

	fmt.Fprintf(&b, "\nYou are replying to this post in r/%s:\n\n", subreddit)
	fmt.Fprintf(&b, "Title: %s\nContent: %s\n", parent.Title, parent.Content)

	var existing []string
	for _, item := range thread {
		if item.Type == models.ContentTypeReply {
			existing = append(existing, "- "+item.Content)
		}
	}
	if len(existing) > 0 {
		fmt.Fprintf(&b, "\nExisting replies in this thread:\n%s\n", strings.Join(existing, "\n"))
	}

	fmt.Fprintf(&b, "\nContext about your domain (use subtly, DO NOT directly promote):\n")
	fmt.Fprintf(&b, "- Company: %s (%s)\n", company.Name, company.Description)
	fmt.Fprintf(&b, "- Domain: %s\n", company.Domain)

	b.WriteString(`
Create a natural, helpful reply that:
1. Adds genuine value to the conversation
2. Sounds authentic and human-written
3. Could naturally mention tools/solutions in this space (but subtly)
4. Is NOT an obvious advertisement
5. Responds directly to what was asked/shared

IMPORTANT: Return ONLY the reply text (2-4 sentences), no JSON, no markdown, no explanations, just the plain text reply.`)

	return b.String()
}

var (
	titlePattern   = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	contentPattern = regexp.MustCompile(`"content"\s*:\s*"([^"]+)"`)
)

// extractPostJSON pulls {title, content} out of a model response,
// tolerating fenced code blocks and surrounding prose. When strict JSON
// parsing fails it falls back to regex extraction over a single line.
func extractPostJSON(raw string) (PostContent, error) {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```") {
		parts := strings.Split(content, "```")
		if len(parts) > 1 {
			content = parts[1]
			content = strings.TrimPrefix(content, "json")
		}
		content = strings.TrimSpace(content)
	}

	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		content = content[start : end+1]
	}

	var pc PostContent
	if err := json.Unmarshal([]byte(content), &pc); err == nil {
		pc.Title = strings.TrimSpace(pc.Title)
		pc.Content = strings.TrimSpace(pc.Content)
		if pc.Title != "" && pc.Content != "" {
			return pc, nil
		}
	}

	flat := strings.ReplaceAll(content, "\n", " ")
	titleMatch := titlePattern.FindStringSubmatch(flat)
	contentMatch := contentPattern.FindStringSubmatch(flat)
	if titleMatch != nil && contentMatch != nil {
		return PostContent{
			Title:   strings.TrimSpace(titleMatch[1]),
			Content: strings.TrimSpace(contentMatch[1]),
		}, nil
	}

	return PostContent{}, fmt.Errorf("could not extract title and content from response")
}

// cleanReplyText strips wrapping quotes from a model-produced reply.
func cleanReplyText(raw string) string {
	reply := strings.TrimSpace(raw)
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(reply, q) && strings.HasSuffix(reply, q) && len(reply) >= 2 {
			reply = reply[1 : len(reply)-1]
		}
	}
	return strings.TrimSpace(reply)
}
