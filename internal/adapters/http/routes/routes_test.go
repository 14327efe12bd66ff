package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	_ "clinicdesk/docs"
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/config"
	"clinicdesk/internal/pkg/password"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type nopNotifier struct{}

func (nopNotifier) SendPasswordReset(ctx context.Context, email, link string) error { return nil }
func (nopNotifier) SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode:  "dev",
		BaseURL:  "http://clinic.test",
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		JWT:      config.JWTConfig{Secret: "test-secret", SessionHours: 1},
		Cookie:   config.CookieConfig{SameSite: "lax"},
		Clinic: config.ClinicConfig{
			AdminUsername:         "admin",
			AdminEmail:            "admin@hospital.com",
			AdminPassword:         "admin123",
			DefaultDoctorPassword: "doctor123",
			ResetTokenTTLMinutes:  60,
		},
	}

	db, err := config.Open(cfg.Database, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.NewSeeder(cfg.Clinic).Run(context.Background(), db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg)
	Setup(app, NewServices(db, cfg, nopNotifier{}), cfg, sqlDB.Ping)
	return app
}

// client keeps cookies between requests
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: map[string]string{}}
}

func (c *client) do(method, target string, form url.Values) *http.Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, target, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (c *client) login(username, pass string) {
	c.t.Helper()
	resp := c.do(fiber.MethodPost, "/login", url.Values{"username": {username}, "password": {pass}})
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/" {
		c.t.Fatalf("login %s: status %d location %q", username, resp.StatusCode, resp.Header.Get("Location"))
	}
	if c.cookies[middleware.SessionCookie] == "" {
		c.t.Fatalf("login %s: no session cookie set", username)
	}
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

type pageBody struct {
	View    string `json:"view"`
	Flashes []struct {
		Category string `json:"category"`
		Text     string `json:"text"`
	} `json:"flashes"`
}

func TestAnonymousAdminDashboardRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	anon := newClient(t, app)

	expectRedirect(t, anon.do(fiber.MethodGet, "/admin/dashboard", nil), "/login")

	var page pageBody
	decode(t, anon.do(fiber.MethodGet, "/login", nil), &page)
	if page.View != "login" || len(page.Flashes) != 1 || page.Flashes[0].Category != "info" {
		t.Fatalf("expected login page with one info flash, got %+v", page)
	}

	resp := anon.do(fiber.MethodGet, "/search_doctors", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous search, got %d", resp.StatusCode)
	}
}

func TestBookingOverHTTP(t *testing.T) {
	app := newTestApp(t)

	var departments []models.Department
	decode(t, newClient(t, app).do(fiber.MethodGet, "/departments", nil), &departments)
	if len(departments) != 6 {
		t.Fatalf("expected 6 seeded departments, got %d", len(departments))
	}

	admin := newClient(t, app)
	admin.login("admin", "admin123")

	resp := admin.do(fiber.MethodPost, "/admin/add_doctor", url.Values{
		"username":       {"drsmith"},
		"email":          {"drsmith@hospital.com"},
		"specialization": {"Cardiology"},
		"department_id":  {strconv.FormatUint(uint64(departments[0].ID), 10)},
		"experience":     {"12"},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("add doctor: expected 201, got %d", resp.StatusCode)
	}

	patient := newClient(t, app)
	expectRedirect(t, patient.do(fiber.MethodPost, "/register/patient", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
		"dob":      {"1990-04-01"},
	}), "/login")
	patient.login("alice", "secret1")
	expectRedirect(t, patient.do(fiber.MethodGet, "/", nil), "/patient/dashboard")

	var found []models.DoctorSummary
	decode(t, patient.do(fiber.MethodGet, "/search_doctors?specialization=cardio", nil), &found)
	if len(found) != 1 || found[0].Name != "drsmith" {
		t.Fatalf("expected drsmith in search results, got %+v", found)
	}

	booking := url.Values{
		"doctor_id": {strconv.FormatUint(uint64(found[0].ID), 10)},
		"date":      {"2030-06-01"},
		"time":      {"10:00"},
	}
	if resp := patient.do(fiber.MethodPost, "/book_appointment", booking); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("book: expected 201, got %d", resp.StatusCode)
	}
	if resp := patient.do(fiber.MethodPost, "/book_appointment", booking); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("double book: expected 409, got %d", resp.StatusCode)
	}

	if resp := admin.do(fiber.MethodPost, "/book_appointment", booking); resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("admin booking: expected 403, got %d", resp.StatusCode)
	}
	expectRedirect(t, patient.do(fiber.MethodGet, "/admin/dashboard", nil), "/")

	var log struct {
		Data []models.AppointmentResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decode(t, admin.do(fiber.MethodGet, "/admin/appointments?page=1&limit=10", nil), &log)
	if log.Meta.Total != 1 || len(log.Data) != 1 {
		t.Fatalf("expected one appointment in the log, got %+v", log.Meta)
	}

	expectRedirect(t, patient.do(fiber.MethodPost, "/cancel_appointment/"+strconv.FormatUint(uint64(log.Data[0].ID), 10), nil), "/patient/dashboard")
	if resp := patient.do(fiber.MethodPost, "/book_appointment", booking); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("rebook after cancel: expected 201, got %d", resp.StatusCode)
	}

	expectRedirect(t, patient.do(fiber.MethodGet, "/logout", nil), "/")
	if resp := patient.do(fiber.MethodGet, "/search_doctors", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestResetDatabaseRequiresConfirmation(t *testing.T) {
	app := newTestApp(t)

	patient := newClient(t, app)
	expectRedirect(t, patient.do(fiber.MethodPost, "/register/patient", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
	}), "/login")

	admin := newClient(t, app)
	admin.login("admin", "admin123")

	expectRedirect(t, admin.do(fiber.MethodPost, "/admin/reset_database", url.Values{"confirm_code": {"reset"}}), "/admin/dashboard")
	var page pageBody
	decode(t, admin.do(fiber.MethodGet, "/admin/dashboard", nil), &page)
	if n := len(page.Flashes); n == 0 || page.Flashes[n-1].Category != "warning" {
		t.Fatalf("expected a warning flash for an unconfirmed reset, got %+v", page.Flashes)
	}
	patient.login("alice", "secret1")

	expectRedirect(t, admin.do(fiber.MethodPost, "/admin/reset_database", url.Values{"confirm_code": {"RESET"}}), "/admin/dashboard")

	resp := newClient(t, app).do(fiber.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	expectRedirect(t, resp, "/login")
	if resp := patient.do(fiber.MethodGet, "/patient/dashboard", nil); resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected wiped patient's session to be rejected, got %d", resp.StatusCode)
	}
}

func TestSessionDoesNotSurviveResetIntoNewAccount(t *testing.T) {
	app := newTestApp(t)

	alice := newClient(t, app)
	expectRedirect(t, alice.do(fiber.MethodPost, "/register/patient", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"secret1"},
	}), "/login")
	alice.login("alice", "secret1")

	admin := newClient(t, app)
	admin.login("admin", "admin123")
	expectRedirect(t, admin.do(fiber.MethodPost, "/admin/reset_database", url.Values{"confirm_code": {"RESET"}}), "/admin/dashboard")

	bob := newClient(t, app)
	expectRedirect(t, bob.do(fiber.MethodPost, "/register/patient", url.Values{
		"username": {"bob"},
		"email":    {"b@x.com"},
		"password": {"secret2"},
	}), "/login")

	expectRedirect(t, alice.do(fiber.MethodGet, "/patient/dashboard", nil), "/login")
	if resp := alice.do(fiber.MethodGet, "/search_doctors", nil); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for a session of a wiped account, got %d", resp.StatusCode)
	}

	bob.login("bob", "secret2")
	if resp := bob.do(fiber.MethodGet, "/patient/dashboard", nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected bob's own dashboard, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	decode(t, newClient(t, app).do(fiber.MethodGet, "/health", nil), &body)
	if body.Checks["database"] != "healthy" {
		t.Fatalf("expected healthy database, got %+v", body.Checks)
	}
}

func TestSwaggerDocument(t *testing.T) {
	app := newTestApp(t)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]interface{} `json:"paths"`
	}
	decode(t, newClient(t, app).do(fiber.MethodGet, "/swagger/doc.json", nil), &doc)
	if doc.Info.Title != "ClinicDesk API" {
		t.Fatalf("expected ClinicDesk API document, got %q", doc.Info.Title)
	}
	if _, ok := doc.Paths["/book_appointment"]; !ok {
		t.Fatalf("expected /book_appointment documented, got %d paths", len(doc.Paths))
	}
}
