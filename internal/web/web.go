// Package web renders the HTML pages and carries one-shot flash messages
// between a redirect and the page that follows it.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

//go:embed templates/*.html
var files embed.FS

var _ fiber.Views = (*Views)(nil)

// Views implements fiber.Views over the embedded templates.
type Views struct {
	once sync.Once
	tmpl *template.Template
	err  error
}

func NewViews() *Views { return &Views{} }

func (v *Views) Load() error {
	v.once.Do(func() {
		v.tmpl, v.err = template.New("").Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).ParseFS(files, "templates/*.html")
	})
	return v.err
}

func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if err := v.Load(); err != nil {
		return err
	}
	if v.tmpl.Lookup(name) == nil {
		return fmt.Errorf("web: template %q not found", name)
	}
	return v.tmpl.ExecuteTemplate(w, name, data)
}

const flashKey = "flash"

// Flash stores messages in the visitor's session until the next Pop.
type Flash struct {
	store *session.Store
}

func NewFlash(cookieName string) *Flash {
	return &Flash{store: session.New(session.Config{KeyLookup: "cookie:" + cookieName})}
}

func (f *Flash) Add(c *fiber.Ctx, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	prev, _ := sess.Get(flashKey).(string)
	if prev != "" {
		msg = prev + "\n" + msg
	}
	sess.Set(flashKey, msg)
	return sess.Save()
}

// Pop returns and clears pending messages. Errors read as no messages.
func (f *Flash) Pop(c *fiber.Ctx) []string {
	sess, err := f.store.Get(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(flashKey).(string)
	if raw == "" {
		return nil
	}
	sess.Delete(flashKey)
	_ = sess.Save()
	return strings.Split(raw, "\n")
}
