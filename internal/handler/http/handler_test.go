package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/mock"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testBearer = "Bearer session-token"

type serviceMocks struct {
	auth      *mock.MockAuthService
	residents *mock.MockResidentService
	items     *mock.MockItemService
	reports   *mock.MockReportService
	appInfo   *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := serviceMocks{
		auth:      mock.NewMockAuthService(ctrl),
		residents: mock.NewMockResidentService(ctrl),
		items:     mock.NewMockItemService(ctrl),
		reports:   mock.NewMockReportService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:     m.auth,
		ResidentService: m.residents,
		ItemService:     m.items,
		ReportService:   m.reports,
		AppInfoService:  m.appInfo,
	}, logger.Nop())
	return h, m
}

// expectSession lets "session-token" through the auth middleware as userID.
func (m serviceMocks) expectSession(userID int64) {
	m.auth.EXPECT().ParseToken(gomock.Any(), "session-token").Return(models.Token{UserID: userID}, nil)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(method, path string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", testBearer)
	return req
}
