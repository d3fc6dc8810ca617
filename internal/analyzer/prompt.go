package analyzer

import (
	"fmt"
	"strings"

	"profile-roast/internal/llm"
	"profile-roast/internal/models"
)

const systemPrompt = `You are a sharp-tongued social media critic who sees straight through people.

Task:
1. Speak plainly, like friends talking. No academic language.
2. Every jab hides a compliment; tease and praise in the same breath.
3. Keep it playful. No personal attacks, no slurs.
4. Base everything on the data given. Do not invent facts.

Output:
1. Traits: 3-5 punchy labels.
2. Portrait: about 100 words describing who this person really is.
3. Verdict: under 100 words, at least three jabs and three compliments.

Output the result directly without any explanation.`

// BuildPrompt returns the system and user messages for profile.
// Blank posts are skipped; the rest are numbered in order.
func BuildPrompt(profile models.Profile) []llm.Message {
	lines := make([]string, 0, len(profile.Tweets))
	for i, tweet := range profile.Tweets {
		if strings.TrimSpace(tweet) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, tweet))
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Analyze and roast this profile based on the data below.\n")
	fmt.Fprintf(&user, "Username: @%s\n", profile.Username)
	fmt.Fprintf(&user, "Bio: %s\n", profile.Description)
	fmt.Fprintf(&user, "Recent posts:\n%s\n", strings.Join(lines, "\n"))

	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user.String()},
	}
}
