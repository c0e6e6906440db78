package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Entry is one chat turn to include in an exported transcript.
type Entry struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

type renderedEntry struct {
	Role string
	When string
	HTML template.HTML
}

type transcriptData struct {
	Title   string
	Entries []renderedEntry
}

// ExportHTML renders a chat transcript as a standalone HTML page with
// syntax-highlighted code blocks. Raw HTML inside message content stays
// escaped.
func ExportHTML(title string, entries []Entry) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	data := transcriptData{Title: title}
	for _, e := range entries {
		var buf bytes.Buffer
		if err := md.Convert([]byte(e.Content), &buf); err != nil {
			return nil, fmt.Errorf("converting message: %w", err)
		}
		data.Entries = append(data.Entries, renderedEntry{
			Role: e.Role,
			When: e.CreatedAt.Format("2006-01-02 15:04"),
			HTML: template.HTML(buf.String()),
		})
	}

	tmpl, err := template.New("transcript").Parse(transcriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing transcript template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("rendering transcript: %w", err)
	}
	return out.Bytes(), nil
}

const transcriptTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 860px; margin: 0 auto; padding: 2rem 1rem; background: #f6f8fa; color: #1f2328; }
h1 { font-size: 1.4rem; border-bottom: 1px solid #d1d9e0; padding-bottom: .5rem; }
.message { background: #fff; border: 1px solid #d1d9e0; border-radius: 8px; padding: 1rem 1.25rem; margin: 1rem 0; }
.message.user { border-left: 4px solid #0969da; }
.message.assistant { border-left: 4px solid #1a7f37; }
.meta { font-size: .75rem; color: #59636e; text-transform: uppercase; letter-spacing: .05em; margin-bottom: .5rem; }
pre { background: #f6f8fa; border-radius: 6px; padding: .75rem; overflow-x: auto; }
code { font-family: ui-monospace, "SF Mono", Menlo, Consolas, monospace; font-size: .85em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Entries}}
<div class="message {{.Role}}">
  <div class="meta">{{.Role}} · {{.When}}</div>
  {{.HTML}}
</div>
{{end}}
</body>
</html>
`
