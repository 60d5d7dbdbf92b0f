package sparkx

import (
	"context"
	"strconv"
)

// TemplatesService manages stored templates.
type TemplatesService service

// TemplateOptions are the delivery defaults stored with a template.
type TemplateOptions struct {
	OpenTracking  *bool `json:"open_tracking,omitempty"`
	ClickTracking *bool `json:"click_tracking,omitempty"`
	Transactional *bool `json:"transactional,omitempty"`
	InlineCSS     *bool `json:"inline_css,omitempty"`
}

// Template is a stored message template. Content holds either inline
// content or an RFC822 message.
type Template struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name,omitempty"`
	Description    string           `json:"description,omitempty"`
	Published      bool             `json:"published,omitempty"`
	Content        *MessageContent  `json:"content,omitempty"`
	Options        *TemplateOptions `json:"options,omitempty"`
	HasDraft       bool             `json:"has_draft,omitempty"`
	HasPublished   bool             `json:"has_published,omitempty"`
	LastUpdateTime string           `json:"last_update_time,omitempty"`
	LastUse        string           `json:"last_use,omitempty"`
}

// TemplatePatch carries the fields of a template to change.
type TemplatePatch struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Content     *MessageContent  `json:"content,omitempty"`
	Options     *TemplateOptions `json:"options,omitempty"`
}

// TemplateUpdate either patches a template or publishes its draft.
type TemplateUpdate struct {
	ID              string
	UpdatePublished bool
	Patch           *TemplatePatch
	Publish         bool
}

// TemplatePreview is a rendered template.
type TemplatePreview struct {
	From    Address           `json:"from"`
	Subject string            `json:"subject"`
	ReplyTo string            `json:"reply_to,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Text    string            `json:"text,omitempty"`
	HTML    string            `json:"html,omitempty"`
	AMPHTML string            `json:"amp_html,omitempty"`
}

// All lists template summaries.
func (s *TemplatesService) All(ctx context.Context) (*Response[[]Template], error) {
	return call[[]Template](ctx, (*service)(s), get("/templates", nil))
}

// Find returns a template, its draft version when draft is set.
func (s *TemplatesService) Find(ctx context.Context, id string, draft bool) (*Response[Template], error) {
	if err := required("template id", id); err != nil {
		return nil, err
	}
	q := params{}.bool("draft", draft)
	return call[Template](ctx, (*service)(s), get(path("templates", id), q.values()))
}

// Create stores a new template.
func (s *TemplatesService) Create(ctx context.Context, t Template) (*Response[IDResult], error) {
	if t.Content == nil || t.Content.IsZero() {
		return nil, usageError("template content is required")
	}
	if t.Content.Template != nil {
		return nil, usageError("template content cannot reference another template")
	}
	return call[IDResult](ctx, (*service)(s), post("/templates", nil, t))
}

// Update patches a template or publishes its draft.
func (s *TemplatesService) Update(ctx context.Context, u TemplateUpdate) (*Response[IDResult], error) {
	req, err := u.request()
	if err != nil {
		return nil, err
	}
	return call[IDResult](ctx, (*service)(s), req)
}

func (u TemplateUpdate) request() (Request, error) {
	if err := required("template id", u.ID); err != nil {
		return Request{}, err
	}

	var body any
	switch {
	case u.Publish && u.Patch != nil:
		return Request{}, usageError("template update: publish and patch are exclusive")
	case u.Publish:
		body = map[string]bool{"published": true}
	case u.Patch != nil:
		body = u.Patch
	default:
		return Request{}, usageError("template update: nothing to update")
	}

	q := params{}.bool("update_published", u.UpdatePublished)
	return put(path("templates", u.ID), q.values(), body), nil
}

// Delete removes a template.
func (s *TemplatesService) Delete(ctx context.Context, id string) (*Response[Empty], error) {
	if err := required("template id", id); err != nil {
		return nil, err
	}
	return call[Empty](ctx, (*service)(s), del(path("templates", id)))
}

// Preview renders a template with substitution data.
func (s *TemplatesService) Preview(ctx context.Context, id string, draft bool, substitutionData map[string]any) (*Response[TemplatePreview], error) {
	if err := required("template id", id); err != nil {
		return nil, err
	}
	if substitutionData == nil {
		substitutionData = map[string]any{}
	}
	q := params{}.set("draft", strconv.FormatBool(draft))
	body := map[string]any{"substitution_data": substitutionData}
	return call[TemplatePreview](ctx, (*service)(s), post(path("templates", id, "preview"), q.values(), body))
}
