package notifx

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

// EmailTemplate is the source of a named template. HTML is escaped as
// html/template does; Subject and Text are plain text templates.
type EmailTemplate struct {
	Subject string `yaml:"subject"`
	HTML    string `yaml:"html"`
	Text    string `yaml:"text"`
}

// Rendered is the output of a template execution.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type compiled struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// TemplateRegistry stores and renders named email templates.
type TemplateRegistry struct {
	templates map[string]compiled
	mu        sync.RWMutex
}

// NewTemplateRegistry creates a new template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]compiled),
	}
}

// Register parses and stores a template by name. Empty parts are skipped.
func (r *TemplateRegistry) Register(name string, src EmailTemplate) error {
	var c compiled
	var err error

	if src.Subject != "" {
		if c.subject, err = texttemplate.New(name + ".subject").Parse(src.Subject); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "subject")
		}
	}
	if src.HTML != "" {
		if c.html, err = htmltemplate.New(name + ".html").Parse(src.HTML); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "html")
		}
	}
	if src.Text != "" {
		if c.text, err = texttemplate.New(name + ".text").Parse(src.Text); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name).WithDetail("part", "text")
		}
	}

	r.mu.Lock()
	r.templates[name] = c
	r.mu.Unlock()

	return nil
}

// Render executes a named template with the given data.
func (r *TemplateRegistry) Render(name string, data any) (Rendered, error) {
	r.mu.RLock()
	c, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return Rendered{}, notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var out Rendered
	var buf bytes.Buffer
	render := func(part string, exec func() error) error {
		buf.Reset()
		if err := exec(); err != nil {
			return notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name).WithDetail("part", part)
		}
		return nil
	}

	if c.subject != nil {
		if err := render("subject", func() error { return c.subject.Execute(&buf, data) }); err != nil {
			return Rendered{}, err
		}
		out.Subject = strings.TrimSpace(buf.String())
	}
	if c.html != nil {
		if err := render("html", func() error { return c.html.Execute(&buf, data) }); err != nil {
			return Rendered{}, err
		}
		out.HTML = buf.String()
	}
	if c.text != nil {
		if err := render("text", func() error { return c.text.Execute(&buf, data) }); err != nil {
			return Rendered{}, err
		}
		out.Text = buf.String()
	}

	return out, nil
}

// Names lists registered templates.
func (r *TemplateRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	return names
}
