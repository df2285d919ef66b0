package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eventrewards/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each email is three files: <name>_subject.txt, <name>.txt and <name>.html.
var (
	textTemplates = texttemplate.Must(texttemplate.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.html"))
)

type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer backed by the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{text: textTemplates, html: htmlTemplates}
}

// Render executes the named email (e.g. "reward_credited") and returns its subject, html and text bodies.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = r.execText(name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	var buf bytes.Buffer
	if err = r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()
	if textBody, err = r.execText(name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) execText(file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, file, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
