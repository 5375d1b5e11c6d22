package podcast

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/loopcast/models"
)

const summaryPrompt = `Analyze this Reddit post and its related content:

Title: %s
Content: %s

Related URLs content:
%s

Top Comments:
%s

Provide a concise summary that captures:
1. The main question/topic
2. Key information from related links
3. Important points from the discussion
4. Why this topic is interesting/relevant
`

const scriptPlanPrompt = `You are a clever podcast script planner. You will be given several top posts from r/OutOfTheLoop, and your task is to generate discussion plans for a podcast where 3 personas explain these topics in an engaging and interactive way.

1. First, evaluate each post based on these criteria:
    Has sufficient context and explanation in comments
    Contains meaningful discussion or impact
    Is interesting enough for podcast discussion
    Has broader implications or connections
    Isn't just a minor or trivial question

2. Then, generate discussion plans ONLY for posts that meet these criteria. Ignore posts that:
    Lack sufficient information or context
    Are too trivial or insignificant
    Have no meaningful community discussion
    Are just simple factual questions
    Don't have enough substance for engaging dialogue

The podcast features:
- The Host: Presents topics professionally and enthusiastically, guides discussion
- The Learner: Asks clever and meaningful questions, represents audience curiosity
- The Expert: Provides deep insights and context, offers detailed analysis

Here are some varied discussion patterns to mix and match:
# Pattern A (Mystery Unfolding)
- Host presents the confusion and initial reactions
- Expert gives quick background context
- Learner jumps in with specific questions as story unfolds
- Host reveals surprising developments
- Expert analyzes why this caught people off guard
- Learner helps break down implications

# Pattern B (Debate/Controversy)
- Host outlines different sides of the issue
- Learner questions why people are divided
- Expert explains competing perspectives
- Host shares community debates
- Learner explores grey areas
- Expert discusses broader societal impact

# Pattern C (Cultural Phenomenon)
- Host explains why it's suddenly relevant
- Expert provides cultural/historical context
- Learner asks about specific examples
- Host highlights creative community responses
- Expert analyzes what it says about internet culture

# Pattern D (Complex Situation)
- Expert gives crucial background first
- Host breaks down key events
- Learner asks for clarification at critical points
- Expert explains underlying factors
- Host shares how community pieced it together
- Learner helps summarize for audience

Posts to cover: %s

Generate discussion plans in this exact markdown format. and Don't mention the patterns explicitly.:

## [First OOTL Question/Title]
- Host introduces the main controversy/confusion point
- Learner asks about [specific confusing aspect]
- Expert explains the core context and background
- Host highlights key community reactions
- Learner asks follow-up questions about implications
- Expert analyzes broader significance
[Additional relevant bullet points as needed]

## [Second OOTL Question/Title]
[Same bullet point structure]

## [Third OOTL Question/Title]
[Same bullet point structure]`

const introductionPrompt = `You are a very clever scriptwriter of podcast introductions. You will be given the topics and context
for an "Out of the Loop" podcast episode. Your task is to generate an engaging and enthusiastic introduction
for the podcast. The introduction should be captivating, interactive, and should make the listeners eager
to hear the discussion. The introduction should have exactly 3 interactions.

Guidelines:
- Generate natural dialogue without sound effects
- Make the introduction engaging and captivating
- Finish with the expert's insight
- Keep it brief but impactful
- Preview the upcoming topics

The podcast involves:
- The Host: Professional, friendly, and enthusiastic presenter who introduces topics
- The Learner: Asks clever questions representing audience curiosity
- The Expert: Provides deep insights and context, speaks less but with more impact

Episode Context:
%s

Generate a brief 3-interaction introduction:`

const sectionDialoguePrompt = `You are a very clever scriptwriter of podcast discussions. You will be given a plan for a section of
an "Out of the Loop" podcast episode involving 3 persons discussing current events and internet phenomena.
Your task is to generate a brief dialogue following the given plan.

Guidelines:
- Generate natural, engaging dialogue without voice effects or introductions
- Make the conversation interactive with clever transitions
- Keep the tone casual but informative
- Follow the structure of the provided discussion points
- Use the additional context to make the discussion more accurate and detailed

The podcast involves:
- The Host: Professional, friendly, and enthusiastic presenter who guides the discussion
- The Learner: Asks clever questions representing audience curiosity
- The Expert: Provides deep insights and detailed analysis, speaks less but with more impact

Section Title: %s
Discussion Points:
%s
%s

Generate a brief, natural dialogue for this section:`

const enhancementPrompt = `You are a very clever scriptwriter of podcast discussions. You will be given a script
for an "Out of the Loop" podcast that explains current events and internet phenomena. Your task is
to enhance the script and format it properly.

Requirements:
1. Format each line as "Speaker: Dialogue text" (e.g., "Host: Hello everyone!")
2. Remove any section headers, audio effects, stage directions, or descriptions
3. Reduce repetition and redundancy between sections
4. Improve transitions between topics naturally within the dialogue
5. Make the dialogue flow naturally and engaging
6. Keep only the actual spoken dialogue
7. Maintain the distinct voices of the three speakers:
   - Host: Professional and enthusiastic
   - Learner: Curious and engaging
   - Expert: Insightful and analytical

Example format:
Host: Welcome to our latest podcast episode! Today, we're discussing...
Learner: That's fascinating! Could you explain...
Expert: Well, essentially what happens is...

Original Script:
%s

Return the enhanced script with natural dialogue and smooth transitions:`

// BuildSummaryPrompt renders the per-post summary prompt. Pure: no I/O.
func BuildSummaryPrompt(post models.RawPost, urlContent map[string]string) string {
	return fmt.Sprintf(summaryPrompt, post.Title, post.SelfText, FormatURLContent(urlContent), FormatComments(post.Comments))
}

// BuildPlanPrompt renders the episode planning prompt from enriched posts.
func BuildPlanPrompt(posts []models.EnrichedPost) string {
	return fmt.Sprintf(scriptPlanPrompt, FormatPostsForPlan(posts))
}

// BuildIntroductionPrompt renders the introduction prompt from per-section
// context collected by the dialogue assembler.
func BuildIntroductionPrompt(context string) string {
	return fmt.Sprintf(introductionPrompt, context)
}

// BuildSectionDialoguePrompt renders one section's dialogue prompt.
func BuildSectionDialoguePrompt(section models.Section, context string) string {
	points := make([]string, 0, len(section.Points))
	for _, p := range section.Points {
		points = append(points, "- "+p)
	}
	return fmt.Sprintf(sectionDialoguePrompt, section.Title, strings.Join(points, "\n"), context)
}

// BuildEnhancementPrompt renders the final formatting pass prompt.
func BuildEnhancementPrompt(script string) string {
	return fmt.Sprintf(enhancementPrompt, script)
}
