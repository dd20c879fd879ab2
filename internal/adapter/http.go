package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/utils"
	"github.com/refugiapp/refugiapp/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SignInMethods implements [ServerAdapter] via GET /api/auth/methods.
func (h *httpServerAdapter) SignInMethods(ctx context.Context, email string) ([]models.SignInMethod, error) {
	var methods models.SignInMethodsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&methods).
		Get("/api/auth/methods")
	if err != nil {
		return nil, fmt.Errorf("sign-in methods request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if methods.Methods == nil {
		return []models.SignInMethod{}, nil
	}
	return methods.Methods, nil
}

// SignUp implements [ServerAdapter]. It POSTs to /api/auth/signup and keeps
// the bearer token from the Authorization response header.
func (h *httpServerAdapter) SignUp(ctx context.Context, req models.SignUpRequest) (models.Identity, error) {
	return h.authenticate(ctx, "/api/auth/signup", req)
}

// SignIn implements [ServerAdapter] via POST /api/auth/signin.
func (h *httpServerAdapter) SignIn(ctx context.Context, req models.SignInRequest) (models.Identity, error) {
	return h.authenticate(ctx, "/api/auth/signin", req)
}

// FederatedSignIn implements [ServerAdapter] via POST /api/auth/federated.
func (h *httpServerAdapter) FederatedSignIn(ctx context.Context, req models.FederatedSignInRequest) (models.Identity, error) {
	return h.authenticate(ctx, "/api/auth/federated", req)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.Identity, error) {
	var identity models.Identity

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&identity).
		Post(path)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return identity, nil
}

// RequestPasswordReset implements [ServerAdapter] via
// POST /api/auth/password-reset.
func (h *httpServerAdapter) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PasswordResetRequest{Email: email}).
		Post("/api/auth/password-reset")
	if err != nil {
		return fmt.Errorf("password reset request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateResident implements [ServerAdapter] via POST /api/residents.
func (h *httpServerAdapter) CreateResident(ctx context.Context, resident models.Resident) (string, error) {
	var created models.CreatedResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(resident).
		SetResult(&created).
		Post("/api/residents")
	if err != nil {
		return "", fmt.Errorf("create resident request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return created.ID, nil
}

// ListResidents implements [ServerAdapter] via GET /api/residents.
func (h *httpServerAdapter) ListResidents(ctx context.Context) ([]models.Resident, error) {
	resp, err := h.authedRequest(ctx).Get("/api/residents")
	if err != nil {
		return nil, fmt.Errorf("list residents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var residents []models.Resident
	if err = json.Unmarshal(resp.Body(), &residents); err != nil {
		return nil, fmt.Errorf("decode residents response: %w", err)
	}
	return residents, nil
}

// ListItems implements [ServerAdapter] via GET /api/items.
func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.Item, error) {
	resp, err := h.authedRequest(ctx).Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.Item
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode items response: %w", err)
	}
	return items, nil
}

// ListReports implements [ServerAdapter] via GET /api/reports.
func (h *httpServerAdapter) ListReports(ctx context.Context) ([]models.Report, error) {
	resp, err := h.authedRequest(ctx).Get("/api/reports")
	if err != nil {
		return nil, fmt.Errorf("list reports request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var reports []models.Report
	if err = json.Unmarshal(resp.Body(), &reports); err != nil {
		return nil, fmt.Errorf("decode reports response: %w", err)
	}
	return reports, nil
}

// ReportRows implements [ServerAdapter] via GET /api/reports?id=. Row key
// order is kept as sent.
func (h *httpServerAdapter) ReportRows(ctx context.Context, id string) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("id", id).
		Get("/api/reports")
	if err != nil {
		return nil, fmt.Errorf("report rows request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var detail models.ReportDetail
	if err = json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, fmt.Errorf("decode report rows response: %w", err)
	}
	return detail.Rows, nil
}

// DownloadReport implements [ServerAdapter] via GET /api/reports/download.
// The filename comes from Content-Disposition when the backend sends one.
func (h *httpServerAdapter) DownloadReport(ctx context.Context, id, format string) (models.RenderedReport, error) {
	req := h.authedRequest(ctx).SetQueryParam("id", id)
	if format != "" {
		req.SetQueryParam("format", format)
	}

	resp, err := req.Get("/api/reports/download")
	if err != nil {
		return models.RenderedReport{}, fmt.Errorf("download report request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RenderedReport{}, err
	}

	out := models.RenderedReport{
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil {
		out.Filename = params["filename"]
	}
	return out, nil
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
