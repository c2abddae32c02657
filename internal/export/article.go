package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/russross/blackfriday"

	"github.com/podscribe/backend/internal/db/models"
)

// Section is one header-delimited block of an article.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExtractTitle returns the first top-level markdown header, or a fallback.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return "Untitled Article"
}

// ExtractSections splits markdown content at second-level headers.
func ExtractSections(content string) []Section {
	sections := []Section{}
	current := Section{Title: "Introduction"}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###") {
			if strings.TrimSpace(current.Content) != "" {
				sections = append(sections, current)
			}
			current = Section{Title: strings.TrimSpace(strings.TrimPrefix(line, "##"))}
			continue
		}
		current.Content += line + "\n"
	}

	if strings.TrimSpace(current.Content) != "" {
		sections = append(sections, current)
	}
	return sections
}

// ArticleMarkdown renders an article as markdown with a metadata header.
func ArticleMarkdown(a *models.Article) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %q\n", a.Title)
	fmt.Fprintf(&sb, "language: %s\n", a.Language)
	fmt.Fprintf(&sb, "style: %s\n", a.Style)
	fmt.Fprintf(&sb, "date: %s\n", a.CreatedAt.Format(time.DateOnly))
	sb.WriteString("---\n\n")
	sb.WriteString(a.Content)
	sb.WriteString("\n")
	return sb.String()
}

// ArticleHTML renders an article as a standalone HTML document.
func ArticleHTML(a *models.Article) string {
	body := blackfriday.MarkdownCommon([]byte(a.Content))

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&sb, "<html lang=%q>\n<head>\n<meta charset=\"utf-8\">\n", a.Language)
	fmt.Fprintf(&sb, "<title>%s</title>\n", htmlEscape(a.Title))
	sb.WriteString(`<style>
body { max-width: 760px; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.6; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; }
</style>
`)
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body)
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
