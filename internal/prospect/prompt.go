package prospect

import (
	"fmt"
	"strings"

	"github.com/salesdojo/salesdojo/internal/models"
)

// buildSystemPrompt constructs the persona-grounding instruction block for
// the prospect. It is deterministic over the scenario snapshot and the
// session's current mood, phase, and topic set.
func buildSystemPrompt(state *models.ConversationState) string {
	sc := state.Scenario

	topics := strings.Join(state.Topics, ", ")
	if topics == "" {
		topics = "none yet"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, %s at %s.\n\n", sc.ProspectName, sc.ProspectRole, sc.Company)

	sb.WriteString("COMPANY CONTEXT:\n")
	fmt.Fprintf(&sb, "- Industry: %s\n", sc.Industry)
	fmt.Fprintf(&sb, "- Company Size: %s\n", sc.CompanySize)
	fmt.Fprintf(&sb, "- Background: %s\n\n", sc.Background)

	sb.WriteString("YOUR PAIN POINTS:\n")
	for _, p := range sc.PainPoints {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	sb.WriteString("\n")

	sb.WriteString("CURRENT STATE:\n")
	fmt.Fprintf(&sb, "- Your mood: %s\n", state.Mood)
	fmt.Fprintf(&sb, "- Conversation phase: %s\n", state.Phase)
	fmt.Fprintf(&sb, "- Topics discussed: %s\n\n", topics)

	sb.WriteString(`BEHAVIOR GUIDELINES:
1. Stay in character at all times
2. Be realistic - don't make it too easy for the salesperson
3. Ask challenging questions about ROI, implementation, and pricing
4. Show skepticism when appropriate, especially early in the conversation
5. Gradually warm up if the salesperson asks good discovery questions
6. Raise objections naturally based on your pain points
7. Don't volunteer information - make them ask good questions
8. Keep responses concise (2-3 sentences typical, 4-5 max)
9. Be professional but authentic to your role

MOOD ADJUSTMENTS:
- Skeptical: Be brief, questioning, need strong proof
- Neutral: Professional, open to hearing more
- Interested: Ask deeper questions, share more context
- Defensive: Push back on claims, need reassurance

Remember: You're a busy executive. Your time is valuable. The salesperson needs to earn your engagement.`)

	return sb.String()
}

// buildSummaryPrompt constructs the feedback request sent once at session
// end, with the full transcript inlined.
func buildSummaryPrompt(state *models.ConversationState, duration int) string {
	var sb strings.Builder
	sb.WriteString("Analyze this sales conversation and provide feedback.\n\n")

	fmt.Fprintf(&sb, "SCENARIO: %s\n", state.Scenario.Title)
	fmt.Fprintf(&sb, "MESSAGES: %d\n", len(state.History))
	fmt.Fprintf(&sb, "DURATION: %d seconds\n", duration)
	fmt.Fprintf(&sb, "KEY TOPICS: %s\n", strings.Join(state.Topics, ", "))
	fmt.Fprintf(&sb, "OBJECTIONS RAISED: %s\n\n", strings.Join(state.Objections, ", "))

	sb.WriteString("CONVERSATION:\n")
	for i, turn := range state.History {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %s", strings.ToUpper(string(turn.Role)), turn.Content)
	}

	sb.WriteString(`

Provide a JSON response with:
{
  "keyMoments": ["moment 1", "moment 2", "moment 3"],
  "strengths": ["strength 1", "strength 2"],
  "areasForImprovement": ["area 1", "area 2"],
  "overallFeedback": "2-3 sentence summary"
}`)

	return sb.String()
}
