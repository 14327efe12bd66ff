package flash

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func TestStore_AddThenPopOnce(t *testing.T) {
	store := NewStore(session.New())
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		if err := store.Add(c, Success, "Login successful!"); err != nil {
			return err
		}
		return store.Add(c, Info, "Welcome back")
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		return c.JSON(store.Pop(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/set", nil))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	read := func() []Message {
		req := httptest.NewRequest("GET", "/get", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		var out []Message
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode %q: %v", body, err)
		}
		return out
	}

	got := read()
	if len(got) != 2 || got[0].Category != Success || got[1].Text != "Welcome back" {
		t.Fatalf("unexpected flashes: %+v", got)
	}
	if again := read(); len(again) != 0 {
		t.Fatalf("expected flashes to be consumed, got %+v", again)
	}
}
