package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Renderer turns markdown templates with front matter into an HTML body
// wrapped in a layout, plus a plain-text alternative.
//
// Templates see two helpers:
//
//	{{md .Value}}    escapes markdown in the HTML rendering; identity in text
//	{{plain .Value}} strips HTML tags
type Renderer struct {
	fsys      fs.FS
	md        goldmark.Markdown
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	tplDir    string
	layoutDir string
	mu        sync.RWMutex
}

type parsedTemplate struct {
	metadata map[string]any
	markdown *texttemplate.Template
	text     *texttemplate.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	templateDir string
	layoutDir   string
	buttonColor string
}

// WithTemplateDir sets the directory of markdown templates. Default: ".".
func WithTemplateDir(dir string) RendererOption {
	return func(c *rendererConfig) { c.templateDir = dir }
}

// WithLayoutDir sets the directory of HTML layouts. Default: "layouts".
func WithLayoutDir(dir string) RendererOption {
	return func(c *rendererConfig) { c.layoutDir = dir }
}

// WithButtonColor sets the background of [!button|…](…) links.
func WithButtonColor(color string) RendererOption {
	return func(c *rendererConfig) { c.buttonColor = color }
}

// NewRenderer creates a renderer over fsys. Single line breaks in markdown
// become <br>, so multi-line user text keeps its shape.
func NewRenderer(fsys fs.FS, opts ...RendererOption) *Renderer {
	cfg := rendererConfig{templateDir: ".", layoutDir: "layouts"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Renderer{
		fsys:      fsys,
		tplDir:    cfg.templateDir,
		layoutDir: cfg.layoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension(cfg.buttonColor)),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// RenderResult is a rendered message body.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data and wraps the HTML in layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	tpl, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var md, txt bytes.Buffer
	if err := tpl.markdown.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %w", ErrRenderFailed, templateName, err)
	}
	if err := tpl.text.Execute(&txt, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %w", ErrRenderFailed, templateName, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %w", ErrRenderFailed, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(body.String()), //nolint:gosec // produced by goldmark without raw HTML
		"Metadata": tpl.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %w", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     textForm(txt.String()),
		Metadata: tpl.metadata,
	}, nil
}

var buttonSyntax = regexp.MustCompile(`\[!button\|([^\]]+)\]\(([^)]+)\)`)

// textForm rewrites button links as "Label: URL" for the plain-text part.
func textForm(s string) string {
	return buttonSyntax.ReplaceAllString(s, "$1: $2")
}

func templateFuncs(escape bool) texttemplate.FuncMap {
	md := func(s string) string { return s }
	if escape {
		md = sanitizer.EscapeMarkdown
	}
	return texttemplate.FuncMap{
		"md":    md,
		"plain": sanitizer.StripHTML,
	}
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Join(r.tplDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	mdTpl, err := texttemplate.New(name).Funcs(templateFuncs(true)).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrRenderFailed, name, err)
	}
	txtTpl, err := texttemplate.New(name).Funcs(templateFuncs(false)).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrRenderFailed, name, err)
	}

	t = &parsedTemplate{metadata: parsed.Metadata, markdown: mdTpl, text: txtTpl}
	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	l, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.layouts[name]; ok {
		return l, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLayoutNotFound, name, err)
	}

	l, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %w", ErrRenderFailed, name, err)
	}

	r.layouts[name] = l
	return l, nil
}
