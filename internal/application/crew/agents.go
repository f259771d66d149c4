package crew

import (
	"fmt"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// researchCrew returns the three agents in execution order.
func researchCrew() []domain.AgentSpec {
	return []domain.AgentSpec{
		{
			Name: "Researcher",
			Role: "Research Analyst",
			Goal: "Gather comprehensive, accurate information on the given topic",
			Backstory: "You are an experienced research analyst with a keen eye for detail. " +
				"You excel at finding relevant information, identifying key trends, and " +
				"synthesizing complex data into clear insights. You always verify your sources " +
				"and present balanced, factual information.",
		},
		{
			Name: "Writer",
			Role: "Content Writer",
			Goal: "Transform research into clear, engaging content",
			Backstory: "You are a skilled content writer who excels at making complex " +
				"topics accessible to general audiences. You write with clarity and precision, " +
				"organizing information logically and maintaining reader engagement throughout. " +
				"You adapt your tone to suit the subject matter while keeping content professional.",
		},
		{
			Name: "Editor",
			Role: "Editor",
			Goal: "Polish content for clarity, accuracy, and professionalism",
			Backstory: "You are a meticulous editor with years of experience refining " +
				"written content. You check for factual accuracy, improve clarity, fix any " +
				"grammatical issues, and ensure the final output is polished and professional. " +
				"You maintain the author's voice while elevating the quality of the writing.",
		},
	}
}

// systemPrompt frames the agent's persona for the provider call.
func systemPrompt(spec domain.AgentSpec) string {
	return fmt.Sprintf("You are %s.\n\nYour goal: %s\n\nBackstory: %s", spec.Role, spec.Goal, spec.Backstory)
}

// taskPrompt builds the agent's task, embedding the previous agent's
// output as context for the handoff.
func taskPrompt(agentName string, topic string, priorOutput string) string {
	switch agentName {
	case "Researcher":
		return fmt.Sprintf(`Research the following topic thoroughly: %s

Your research should include:
1. Key facts and statistics
2. Current trends and developments
3. Important considerations or challenges
4. Notable examples or case studies (if relevant)

Provide comprehensive but focused research that will serve as the
foundation for a well-written brief.`, topic)
	case "Writer":
		return fmt.Sprintf(`Using the research provided, write a clear and engaging brief about: %s

Your brief should:
1. Have a clear introduction that frames the topic
2. Present key information in a logical flow
3. Include relevant examples or data points
4. Conclude with key takeaways

Target length: 300-500 words. Make it accessible to a general business audience.

RESEARCH:
%s`, topic, priorOutput)
	case "Editor":
		return fmt.Sprintf(`Review and polish the written brief.

Your editing should:
1. Check for factual accuracy and consistency
2. Improve clarity and readability
3. Fix any grammatical or stylistic issues
4. Ensure professional tone throughout
5. Verify the brief is well-organized and flows logically

Provide the final, polished version of the brief.

BRIEF:
%s`, priorOutput)
	default:
		return topic
	}
}
