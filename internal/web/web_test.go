package web

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsRender(t *testing.T) {
	v := NewViews()
	require.NoError(t, v.Load())

	var buf bytes.Buffer
	err := v.Render(&buf, "mcq.html", fiber.Map{
		"Title": "Quiz",
		"Topic": "Arithmetic",
		"Questions": []map[string]any{{
			"Question":      "What is 2+2?",
			"Options":       map[string]string{"B": "4", "A": "3", "D": "6", "C": "5"},
			"CorrectAnswer": "B",
		}},
	})
	require.NoError(t, err)
	out := buf.String()
	// html/template escapes + inside element text
	assert.Contains(t, out, "Q1. What is 2&#43;2?")
	assert.Contains(t, out, "Correct Answer: B")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("A. 3")), bytes.Index(buf.Bytes(), []byte("B. 4")), "options render in letter order")
}

func TestViewsUnknownTemplate(t *testing.T) {
	err := NewViews().Render(io.Discard, "nope.html", nil)
	assert.Error(t, err)
}

func TestViewsEscapesModelText(t *testing.T) {
	var buf bytes.Buffer
	err := NewViews().Render(&buf, "mcq.html", fiber.Map{
		"Questions": []map[string]any{{"Question": "<script>x</script>"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;x&lt;/script&gt;")
}

func TestFlashRoundTrip(t *testing.T) {
	flash := NewFlash("test_sid")
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		_ = flash.Add(c, "first")
		_ = flash.Add(c, "second")
		return c.SendStatus(http.StatusNoContent)
	})
	app.Get("/pop", func(c *fiber.Ctx) error {
		return c.JSON(flash.Pop(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	pop := func() string {
		req := httptest.NewRequest(http.MethodGet, "/pop", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		return string(b)
	}

	assert.Equal(t, `["first","second"]`, pop())
	assert.Equal(t, `null`, pop(), "messages are shown once")
}
