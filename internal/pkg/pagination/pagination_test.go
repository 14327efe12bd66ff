package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestNewParams_Clamps(t *testing.T) {
	p := NewParams(0, 0)
	if p.Page != 1 || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p = NewParams(3, 500)
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 2*MaxLimit {
		t.Fatalf("expected offset %d, got %d", 2*MaxLimit, p.Offset)
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(NewParams(2, 10), 25)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Fatalf("expected both next and prev: %+v", meta)
	}

	meta = GetMeta(NewParams(1, 10), 0)
	if meta.TotalPages != 0 || meta.HasNext || meta.HasPrev {
		t.Fatalf("unexpected meta for empty result: %+v", meta)
	}
}

func TestGetParams_FromAppointmentLogQuery(t *testing.T) {
	app := fiber.New()
	var got *Params
	app.Get("/admin/appointments", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.JSON(NewResponse([]string{}, got, 45))
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/admin/appointments?page=3&limit=abc", nil)); err != nil {
		t.Fatalf("request: %v", err)
	}
	if got.Page != 3 || got.Limit != DefaultLimit || got.Offset != 2*DefaultLimit {
		t.Fatalf("expected page 3 at the default limit, got %+v", got)
	}
	if meta := GetMeta(got, 45); meta.TotalPages != 3 || meta.HasNext {
		t.Fatalf("expected last of 3 pages, got %+v", meta)
	}
}
