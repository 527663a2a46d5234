package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"volunteerhub/internal/domain"
)

// Template names understood by Render. Each has <name>_subject.txt, <name>.html and <name>.txt.
const (
	TemplateWelcome        = "welcome"
	TemplateEventCompleted = "event_completed"
)

//go:embed templates/*
var templateFS embed.FS

var funcs = map[string]any{
	"hours": func(h float64) string { return fmt.Sprintf("%.2f", h) },
}

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("mail").Funcs(funcs).Option("missingkey=error").ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.New("mail").Funcs(funcs).Option("missingkey=error").ParseFS(templateFS, "templates/*.txt"))
)

type executor interface {
	ExecuteTemplate(wr io.Writer, name string, data any) error
}

// templateRenderer renders the embedded mail templates.
type templateRenderer struct {
	html executor
	text executor
}

// NewTemplateRenderer returns a renderer over the templates embedded in this package.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{html: htmlTemplates, text: textTemplates}
}

func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = execute(r.text, name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if htmlBody, err = execute(r.html, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if textBody, err = execute(r.text, name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func execute(set executor, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
