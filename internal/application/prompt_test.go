package application_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/postwriter/internal/application"
)

func TestBuildPrompt_EmbedsTopicAfterStyleGuide(t *testing.T) {
	prompt := application.BuildPrompt("Remote work in 2030")

	assert.True(t, strings.HasPrefix(prompt, application.StylePrompt))
	assert.Contains(t, prompt, "\n\nTopic: Remote work in 2030\n")
	assert.Contains(t, prompt, "Goal: Create a high-performing LinkedIn post based on this.")

	topicAt := strings.Index(prompt, "Topic: ")
	goalAt := strings.Index(prompt, "Goal: ")
	assert.Less(t, topicAt, goalAt, "topic line precedes goal line")
}

func TestBuildPrompt_TopicIsNotAltered(t *testing.T) {
	topic := "  `backticks` & <tags> ${x}  "

	prompt := application.BuildPrompt(topic)

	assert.Contains(t, prompt, "Topic: "+topic+"\n")
}

func TestStylePrompt_CarriesFormattingRules(t *testing.T) {
	assert.Contains(t, application.StylePrompt, "🚀")
	assert.NotEmpty(t, application.DefaultTopic)
}

func TestStylePrompt_KeepsPunctuationAndHardBreaks(t *testing.T) {
	for _, want := range []string{
		"talking to their peers—not a brand.",
		"evolved *fast*—and so has the journey.  \n",
		"3–5 short punchy paragraphs",
		"Too many tokens? Costs skyrocket.  \n",
		"clipping the model's wings ✂.  \n",
		"Want cost-effective AI and faster results?  \n",
		"(Like so many others)  \n",
		"A classic cat vs. dog classifier.  \n",
		"---\n3️⃣\n",
	} {
		assert.Contains(t, application.StylePrompt, want)
	}

	assert.True(t, strings.HasPrefix(application.StylePrompt, "You're writing as"))
	assert.True(t, strings.HasSuffix(application.StylePrompt, "end with a CTA or engagement hook."))
}
