package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var files embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`
	SupportURL  string `json:"SupportURL"`

	// Action URLs
	ResetURL string `json:"ResetURL"`

	// Additional data
	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	IP            string    `json:"IP"`
	Time          string    `json:"Time"`
	TimeAt        time.Time `json:"TimeAt"`
	UserAgent     string    `json:"UserAgent"`
	Location      string    `json:"Location"`
}

// Map converts d into the loosely typed form carried by EmailJob.Data.
func (d EmailData) Map() map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func funcs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

// Parsed once; template names are the file names.
var (
	textTemplates = texttpl.Must(texttpl.New("text").Funcs(funcs()).ParseFS(files, "*.subject.tmpl", "*.text.tmpl"))
	htmlTemplates = htmpl.Must(htmpl.New("html").Funcs(funcs()).ParseFS(files, "*.html.tmpl"))
)

const (
	PasswordReset = "password_reset"
)

var defaultSubjects = map[string]string{
	PasswordReset: "Reset your password",
}

// DefaultSubject is used when a subject template renders empty.
func DefaultSubject(name string) string {
	if s, ok := defaultSubjects[name]; ok {
		return s
	}
	return "Notification"
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(t executor, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render produces subject, text and html bodies for the named template.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = execute(textTemplates, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if subject = strings.TrimSpace(subject); subject == "" {
		subject = DefaultSubject(name)
	}
	if text, err = execute(textTemplates, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlTemplates, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
