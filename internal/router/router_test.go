package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"propman-backend/internal/audit"
	"propman-backend/internal/config"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/store"
	"propman-backend/internal/testutil"
	"propman-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		CORSOrigins:    "http://localhost:5173",
		UploadDir:      t.TempDir(),
		UploadMaxBytes: 1 << 20,
	}
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	svc := portfolio.New(store.New(db), nil, portfolio.WithClock(func() time.Time { return now }))

	app := New(Deps{
		Config:    cfg,
		DB:        db,
		Portfolio: svc,
		Audit:     audit.New(db, svc),
		Uploads:   upload.New(cfg.UploadDir, cfg.UploadMaxBytes),
	})
	return &harness{t: t, app: app}
}

func (h *harness) do(method, path string, body any) (*http.Response, []byte) {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	return h.send(req)
}

func (h *harness) send(req *http.Request) (*http.Response, []byte) {
	h.t.Helper()
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

// login registers the owner on first use and stores a token.
func (h *harness) loginOwner() {
	h.t.Helper()
	creds := map[string]string{"name": "Ana", "email": "ana@example.com", "password": "s3cret-pass"}
	resp, _ := h.do(http.MethodPost, "/api/auth/register-owner", creds)
	require.Equal(h.t, http.StatusCreated, resp.StatusCode)

	resp, data := h.do(http.MethodPost, "/api/auth/login", creds)
	require.Equal(h.t, http.StatusOK, resp.StatusCode)
	h.token = decode[struct {
		Token string `json:"token"`
	}](h.t, data).Token
	require.NotEmpty(h.t, h.token)
}

func TestOwnerRegistrationIsOneShot(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, _ := h.do(http.MethodPost, "/api/auth/register-owner",
		map[string]string{"name": "Eve", "email": "eve@example.com", "password": "another-pass"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data := h.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"role":"owner"`)
}

func TestWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"wrong email or password"}`, string(data))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(http.MethodGet, "/api/properties", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownPagesRedirectToDashboard(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/", "/reports", "/api/nowhere"} {
		resp, _ := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, HomePath, resp.Header.Get("Location"), path)
	}
}

func TestUnknownPathUnderResourceChecksTokenFirst(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(http.MethodGet, "/api/properties/x/y", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	h.loginOwner()
	resp, _ = h.do(http.MethodGet, "/api/properties/x/y", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, HomePath, resp.Header.Get("Location"))
}

func TestValidationFailureIs422(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodPost, "/api/tenants", map[string]any{"name": "Rui", "email": "not-an-email"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}](t, data)
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "must be a valid email address", body.Fields["email"])
	assert.Equal(t, "is required", body.Fields["cpf"])
	assert.Equal(t, "is required", body.Fields["phone"])
}

func TestPropertyLifecycleAndUndo(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodPost, "/api/properties", map[string]any{"name": "Casa Azul", "address": "Rua C, 3"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decode[struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}](t, data)
	assert.Equal(t, "apartment", created.Type)
	assert.Equal(t, "vacant", created.Status)

	resp, data = h.do(http.MethodGet, "/api/properties?q=azul", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, data), 1)

	resp, _ = h.do(http.MethodDelete, "/api/properties/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(http.MethodGet, "/api/properties/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = h.do(http.MethodGet, "/api/audit-logs?entity_type=property", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decode[[]audit.AuditLogResponse](t, data)
	require.Len(t, logs, 2)
	assert.Equal(t, "delete", string(logs[0].Action))

	resp, data = h.do(http.MethodPost, "/api/audit-logs/"+itoa(logs[0].ID)+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = h.do(http.MethodGet, "/api/properties/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Casa Azul")

	resp, _ = h.do(http.MethodPost, "/api/audit-logs/"+itoa(logs[0].ID)+"/undo", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateUnknownIs404(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, _ := h.do(http.MethodPut, "/api/expenses/missing",
		map[string]any{"property_id": "p", "date": "2026-10-01", "description": "x", "amount": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestManagerCannotUndo(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, _ := h.do(http.MethodPost, "/api/users",
		map[string]string{"name": "Bia", "email": "bia@example.com", "password": "manager-pass"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := h.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "bia@example.com", "password": "manager-pass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h.token = decode[struct {
		Token string `json:"token"`
	}](t, data).Token

	resp, _ = h.do(http.MethodPost, "/api/audit-logs/1/undo", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = h.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboardAndLateFees(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodPost, "/api/contracts", map[string]any{
		"property_id": "p1", "tenant_id": "t1",
		"start_date": "2026-01-01", "end_date": "2026-12-31", "monthly_rent": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	contractID := decode[struct {
		ID string `json:"id"`
	}](t, data).ID

	resp, data = h.do(http.MethodPost, "/api/payments", map[string]any{
		"contract_id": contractID, "amount": 2000, "due_date": "2026-10-05", "status": "overdue",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	paymentID := decode[struct {
		ID string `json:"id"`
	}](t, data).ID

	resp, data = h.do(http.MethodGet, "/api/payments/"+paymentID+"/late-fee", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote := decode[portfolio.LateFeeQuote](t, data)
	assert.Equal(t, 12, quote.DaysLate)
	assert.InDelta(t, 200, quote.Fee, 0.001)

	resp, data = h.do(http.MethodPost, "/api/payments/late-fees/apply", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), paymentID)

	resp, data = h.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := decode[portfolio.Dashboard](t, data)
	assert.Equal(t, 1, d.Stats.OverduePayments)
	require.Len(t, d.Reminders, 1)
	assert.Equal(t, "unknown property", d.Reminders[0].PropertyName)
	assert.InDelta(t, 200, d.Reminders[0].LateFee, 0.001)

	resp, _ = h.do(http.MethodGet, "/api/dashboard/financials?period=2weeks", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = h.do(http.MethodGet, "/api/dashboard/financials?period=12months", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[struct {
		Points []map[string]any `json:"points"`
	}](t, data).Points, 12)
}

func TestReceiptUpload(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodPost, "/api/expenses",
		map[string]any{"property_id": "p1", "date": "2026-10-01", "description": "pintura", "amount": 450})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	expenseID := decode[struct {
		ID string `json:"id"`
	}](t, data).ID

	receipt := h.uploadReceipt(expenseID, "%PDF-1.4 receipt")
	require.Contains(t, receipt, "/api/files/")

	resp, data = h.do(http.MethodGet, receipt, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 receipt", string(data))

	replaced := h.uploadReceipt(expenseID, "%PDF-1.4 corrected")
	require.NotEqual(t, receipt, replaced)

	resp, _ = h.do(http.MethodGet, receipt, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "the replaced file is removed")
	resp, data = h.do(http.MethodGet, replaced, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 corrected", string(data))
}

func (h *harness) uploadReceipt(expenseID, content string) string {
	h.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "nota.pdf")
	require.NoError(h.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(h.t, err)
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/expenses/"+expenseID+"/receipt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, data := h.send(req)
	require.Equal(h.t, http.StatusOK, resp.StatusCode, string(data))

	return decode[struct {
		Receipt string `json:"receipt"`
	}](h.t, data).Receipt
}

func TestExportsAreSpreadsheets(t *testing.T) {
	h := newHarness(t)
	h.loginOwner()

	resp, data := h.do(http.MethodGet, "/api/exports/payments.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	// xlsx is a zip archive
	assert.Equal(t, "PK", string(data[:2]))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
