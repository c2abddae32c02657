package content

import (
	"fmt"
	"strings"
)

// Languages maps supported translation target codes to display names.
var Languages = map[string]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese (Simplified)",
}

// styleGuide is the house writing style applied to every generated article.
const styleGuide = `Writing style:
- Casual, friendly, and conversational tone
- Direct address to the reader ("you")
- Short, punchy paragraphs for easy reading
- Practical, actionable advice
- Clear structure with markdown headers
- Summary sections with bullet points
- Industry insights made accessible`

func articleSystemPrompt() string {
	return styleGuide + `

You are a content writer who transforms podcast transcripts into engaging blog articles.`
}

func correctionSystemPrompt() string {
	return `You are an editor cleaning up machine transcripts of podcasts. Fix punctuation, casing, obvious mishearings and remove filler words, but never rewrite or summarize: the speaker's own wording must survive. Output only the corrected transcript.`
}

func translationSystemPrompt(languageName string) string {
	return fmt.Sprintf(`You are an expert translator specializing in editorial content.
Translate the following content to %s, maintaining:
1. The original tone and style
2. Cultural appropriateness and context
3. Industry-specific terminology
4. SEO optimization
5. All markdown formatting
Output only the translated content.`, languageName)
}

func buildArticlePrompt(transcript string, opts ArticleOptions) string {
	wordCount := "2000-2500"
	if opts.Style == "short" {
		wordCount = "500-800"
	}

	var sb strings.Builder
	sb.WriteString("Transform the following podcast transcript into a compelling blog article.\n\n")
	fmt.Fprintf(&sb, "TARGET WORD COUNT: %s words\n\n", wordCount)
	if opts.Angle != "" {
		fmt.Fprintf(&sb, "EDITORIAL ANGLE: %s\n\n", opts.Angle)
	}
	if opts.Instructions != "" {
		fmt.Fprintf(&sb, "ADDITIONAL INSTRUCTIONS: %s\n\n", opts.Instructions)
	}
	sb.WriteString(`REQUIREMENTS:
1. Create an engaging, SEO-friendly title as a top-level markdown header
2. Structure with clear headers and sections
3. Include actionable takeaways
4. Add a compelling summary section with bullet points
5. Output only the article in markdown

TRANSCRIPT:
`)
	sb.WriteString(transcript)
	return sb.String()
}

func buildCorrectionPrompt(transcript, instructions string) string {
	var sb strings.Builder
	if instructions != "" {
		fmt.Fprintf(&sb, "ADDITIONAL INSTRUCTIONS: %s\n\n", instructions)
	}
	sb.WriteString("TRANSCRIPT:\n")
	sb.WriteString(transcript)
	return sb.String()
}

func buildTranslationPrompt(content string, keywords []string) string {
	var sb strings.Builder
	if len(keywords) > 0 {
		fmt.Fprintf(&sb, "SEO KEYWORDS TO PRESERVE: %s\n\n", strings.Join(keywords, ", "))
	}
	sb.WriteString("CONTENT:\n")
	sb.WriteString(content)
	return sb.String()
}
