package storyboard

// Separator joins the bolded script line and its image prompt in every list
// item the model is asked to produce.
const Separator = "->"

const promptTemplate = `You are an expert Creative Director and Visual Storyteller. Your task is to analyze the provided script and generate a **highly detailed, artistic Image Generation Prompt** (like for Midjourney, Stable Diffusion, or DALL-E) for every significant action or dialogue line in the script.

Your output MUST be a **Markdown List** where each item contains two parts, separated by '` + Separator + `':
1.  **The Original Script Line (bold):** The exact line from the script.
2.  **The Image Prompt:** A detailed, descriptive prompt (including style, lighting, camera angle, and mood) that visually captures the essence of that line.

**Strict Output Format (ONLY use this format):**
* **[Original Script Line]** ` + Separator + ` [Detailed Image Prompt, including artistic style, lighting, and mood]

**Example:**
* **The two friends stand silently on a desolate hill.** ` + Separator + ` A cinematic wide shot of two silhouette figures standing on a barren mountain peak at twilight, dramatic lens flare, deep purples and oranges, ultra-realistic, 8k.
* **The child laughs loudly and embraces a dog.** ` + Separator + ` A heartwarming, close-up portrait of a child laughing joyfully while hugging a Golden Retriever puppy, soft morning light, shallow depth of field, photorealistic, Canon EOS R5.

---
**Original Script to Analyze:**
`

// Compose wraps script in the fixed creative-director instructions sent to the
// generation model. The script is embedded verbatim at the end of the prompt;
// it is neither escaped nor validated, and an empty script is accepted.
func Compose(script string) string {
	return promptTemplate + script + "\n"
}
