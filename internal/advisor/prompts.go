package advisor

import (
	"fmt"
	"strings"

	"switchplan-backend/internal/catalog"
	"switchplan-backend/internal/llm"
)

const personaPrompt = "You are Blue, a friendly mobile plan advisor for a Canadian plan comparison site. " +
	"Greet the customer warmly, keep answers short, and steer the conversation toward finding them a better phone plan."

// Fixed reply texts for the deterministic branches of the conversation.
const (
	msgConfirmed = "Great! Please share your plan details so I can find the best match: " +
		"your monthly budget, how much data you need, your current provider, " +
		"whether you're willing to switch carriers, and whether you need US roaming."
	msgDeclined = "No problem at all. If you change your mind, I'm right here — " +
		"just say the word and we'll find you a better plan."
	msgReprompt = "Sorry, I didn't catch that. Would you like help finding a better mobile plan? " +
		"A simple yes or no works."
	msgDetailsAck = "Thanks! I've got everything I need. Ask me for a recommendation " +
		"whenever you're ready and I'll pull up the best matches."
	msgAwaitingDetails = "I'm just waiting on your plan details — your budget, data needs, " +
		"current provider, switching preference, and roaming needs."
	msgProcessingHint = "I have your details on file. Ask me for a recommendation, " +
		"or give me a plan code and I'll tell you more about that plan."
	msgFollowUp = "Would you like to go ahead with this plan, or see the other recommendations again?"
)

func greetingMessages(userMessage string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: personaPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}
}

func noPlansMessages(prefs preferences) []llm.Message {
	framing := fmt.Sprintf(
		"No plans were found for the user's criteria (budget $%.2f, at least %.1f GB of data%s%s). "+
			"Break the news gently, suggest loosening one constraint, and invite them to try again.",
		prefs.Budget,
		prefs.DataNeeded,
		roamingClause(prefs),
		switchClause(prefs),
	)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: personaPrompt},
		{Role: llm.RoleSystem, Content: framing},
		{Role: llm.RoleUser, Content: "Were any plans found for me?"},
	}
}

func recommendationMessages(list string) []llm.Message {
	framing := "These plans match the customer's criteria, ranked best first. " +
		"Present them conversationally, mention each plan code so the customer can pick one, " +
		"and ask which they'd like."
	return []llm.Message{
		{Role: llm.RoleSystem, Content: personaPrompt},
		{Role: llm.RoleSystem, Content: framing},
		{Role: llm.RoleUser, Content: list},
	}
}

func roamingClause(prefs preferences) string {
	if prefs.NeedsRoaming {
		return ", with US roaming"
	}
	return ""
}

func switchClause(prefs preferences) string {
	if !prefs.WillingToSwitch && prefs.CurrentProvider != "" {
		return ", staying with " + prefs.CurrentProvider
	}
	return ""
}

// formatPlanList renders the ranked shortlist as the enumerated list handed
// to the text-generation service. The structured list itself is never
// returned to the caller.
func formatPlanList(plans []catalog.Plan) string {
	var b strings.Builder
	for i, p := range plans {
		roaming := "no"
		if p.USRoaming {
			roaming = "yes"
		}
		fmt.Fprintf(&b, "%d. %s %s - %.1f GB for $%.2f/month, US roaming: %s (plan code %s)\n",
			i+1, p.Carrier, p.PlanName, p.DataGB, p.Price, roaming, p.Code)
	}
	return strings.TrimRight(b.String(), "\n")
}

// describePlan is the one reply path that never touches the LLM: a
// deterministic, locally composed description of an exact plan-code match.
func describePlan(p catalog.Plan) string {
	roaming := "US roaming is not included"
	if p.USRoaming {
		roaming = "US roaming is included"
	}
	return fmt.Sprintf(
		"Here's what the %s %s gives you:\n"+
			"- %.1f GB of data per month\n"+
			"- $%.2f/month\n"+
			"- %s\n"+
			"- Plan code: %s\n\n%s",
		p.Carrier, p.PlanName, p.DataGB, p.Price, roaming, p.Code, msgFollowUp,
	)
}

func planNotFound(code string) string {
	return fmt.Sprintf("I couldn't find a plan with code %q. "+
		"Double-check the code from the recommendation list and try again.", code)
}
