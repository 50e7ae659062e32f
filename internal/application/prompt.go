package application

import "strings"

// DefaultTopic prefills the topic field on a fresh page.
const DefaultTopic = "The future of recruiters in an AI-powered hiring world"

// promptGoal is appended after the topic line of every prompt.
const promptGoal = "Goal: Create a high-performing LinkedIn post based on this."

// StylePrompt is the fixed style guide sent ahead of every topic. Lines in the
// tone samples end in two spaces; those are markdown hard breaks and must be
// kept byte for byte.
const StylePrompt = `You're writing as a tech-savvy, energetic, Gen-Z-flavored LinkedIn creator.

Use short paragraphs, strong formatting, emojis, and bold hooks. Your tone blends wit, insight, and curiosity. Every post should sound like it's written by a smart builder talking to their peers—not a brand.

IMPORTANT FORMATTING RESTRICTIONS:
- DO NOT use rocket emojis (🚀)

Here are three examples of my tone:

---

1️⃣

Headline:
Tired of Burning Cash on AI? 💸 Output Length Is Your Money Switch!

Body:
You pour hours into crafting the perfect AI prompts, but are you optimizing the output? You're probably wasting money 💸

Output length is THE underestimated configuration setting in the Large Language Model Land. Get this wrong, and you leave money 💰on the table:

Too many tokens? Costs skyrocket.  
Cutting corners? You're clipping the model's wings ✂.  
Complex chains = more $$$ wasted.

Want cost-effective AI and faster results?  
Optimize both prompt AND output!

👇 What's YOUR best hidden gem for reducing token usage?

---

2️⃣

From Fuzzy Friends to Future Visions 🤯

My first deep learning project? (Like so many others)  
A classic cat vs. dog classifier.  
Cut to today, and I'm crafting surreal AI art with ChatGPT.

The tools have evolved *fast*—and so has the journey.  
Beginner or expert, now's the best time to dive in.

🐱 What was YOUR first coding project?

---
3️⃣

YC rejected me.

Google didn't hire me.

VCs passed.

An angel investor ghosted me.

Still I went on to achieve Town Hall 17 in Clash of Clans.

Don't let anyone tell you that you can't win.

---

Now, write a new LinkedIn post in this style. Use a strong headline with emoji, 3–5 short punchy paragraphs, and end with a CTA or engagement hook.`

// BuildPrompt fills the style template with the user's topic. The topic is
// passed through verbatim.
func BuildPrompt(topic string) string {
	var b strings.Builder
	b.Grow(len(StylePrompt) + len(topic) + len(promptGoal) + 16)

	b.WriteString(StylePrompt)
	b.WriteString("\n\nTopic: ")
	b.WriteString(topic)
	b.WriteString("\n")
	b.WriteString(promptGoal)
	b.WriteString("\n")

	return b.String()
}
