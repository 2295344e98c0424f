package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/logger"
)

// IndexPage is the path of the generated preview index.
const IndexPage = "index.html"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{if .Index}}<nav><a href="{{.Index}}">Index</a></nav>
{{end}}<main>
{{.Body}}
</main>
</body>
</html>
`))

var indexTmpl = template.Must(template.New("index").Parse(`<h1>{{.Title}}</h1>
<ul>
{{range .Links}}<li><a href="{{.Href}}">{{.Title}}</a> <code>{{.ImportPath}}</code> from <code>{{.Source}}</code>{{with .Summary}}<p>{{.}}</p>{{end}}</li>
{{end}}</ul>
`))

type page struct {
	Title string
	Index string
	Body  template.HTML
}

type indexLink struct {
	Href       string
	Title      string
	ImportPath string
	Source     string
	Summary    string
}

// Preview renders each planned unit's markdown as a standalone HTML page
// and adds an index linking them.
func (s *GeneratorService) Preview(ctx context.Context, m *domain.Manifest) ([]domain.PreviewPage, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("preview: %w", domain.ErrNotConfigured)
	}

	units, err := s.Plan(ctx, m)
	if err != nil {
		return nil, err
	}

	logger.Section("Preview")
	pages := make([]domain.PreviewPage, 0, len(units)+1)
	links := make([]indexLink, 0, len(units))
	for i := range units {
		pu := &units[i]
		body, err := s.renderer.Render([]byte(pu.Unit.Text))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", pu.Source, err)
		}

		p := previewPath(pu.Output)
		html, err := executePage(page{
			Title: pu.Title,
			Index: strings.Repeat("../", strings.Count(p, "/")) + IndexPage,
			Body:  template.HTML(body), //nolint:gosec // renderer output
		})
		if err != nil {
			return nil, err
		}

		logger.Debug("preview %s", p)
		pages = append(pages, domain.PreviewPage{Path: p, Title: pu.Title, HTML: html})
		links = append(links, indexLink{
			Href:       p,
			Title:      pu.Title,
			ImportPath: pu.ImportPath(m.Generator.Module),
			Source:     pu.Source,
			Summary:    pu.Summary,
		})
	}

	index, err := renderIndex(links)
	if err != nil {
		return nil, err
	}
	return append(pages, index), nil
}

func previewPath(output string) string {
	return strings.TrimSuffix(output, ".go") + ".html"
}

func renderIndex(links []indexLink) (domain.PreviewPage, error) {
	const title = "Documentation preview"

	var body bytes.Buffer
	err := indexTmpl.Execute(&body, struct {
		Title string
		Links []indexLink
	}{title, links})
	if err != nil {
		return domain.PreviewPage{}, fmt.Errorf("rendering index: %w", err)
	}

	html, err := executePage(page{Title: title, Body: template.HTML(body.String())}) //nolint:gosec // template output
	if err != nil {
		return domain.PreviewPage{}, err
	}
	return domain.PreviewPage{Path: IndexPage, Title: title, HTML: html}, nil
}

func executePage(p page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("rendering page %q: %w", p.Title, err)
	}
	return buf.Bytes(), nil
}
