// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/refugiapp/refugiapp/internal/config"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBearer = "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxIn0.signature"

// newTestAdapter creates an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestSignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signin", r.URL.Path)

		var req models.SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)

		w.Header().Set("Authorization", testBearer)
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "1", Email: "ana@example.com", Provider: models.SignInMethodPassword})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	identity, err := a.SignIn(context.Background(), models.SignInRequest{Email: "ana@example.com", Password: "secreto"})

	require.NoError(t, err)
	assert.Equal(t, "1", identity.ID)
	assert.NotEmpty(t, a.Token())
}

func TestSignIn_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("wrong email or password"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SignIn(context.Background(), models.SignInRequest{Email: "ana@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestSignIn_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SignIn(context.Background(), models.SignInRequest{Email: "a@b.c", Password: "x"})

	assert.Error(t, err)
	assert.Empty(t, a.Token())
}

func TestSignUp_ProviderMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("provider mismatch"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SignUp(context.Background(), models.SignUpRequest{Email: "g@example.com", Password: "secreto"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrProviderMismatch)
}

func TestSignUp_PlainConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("email already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SignUp(context.Background(), models.SignUpRequest{Email: "ana@example.com", Password: "secreto"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrProviderMismatch)
}

func TestFederatedSignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/federated", r.URL.Path)

		var req models.FederatedSignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "assertion", req.IDToken)

		w.Header().Set("Authorization", testBearer)
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "5", Provider: models.SignInMethodGoogle})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	identity, err := a.FederatedSignIn(context.Background(), models.FederatedSignInRequest{IDToken: "assertion"})

	require.NoError(t, err)
	assert.Equal(t, models.SignInMethodGoogle, identity.Provider)
}

func TestSignInMethods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/methods", r.URL.Path)
		if r.URL.Query().Get("email") == "g@example.com" {
			writeJSON(t, w, http.StatusOK, models.SignInMethodsResponse{Methods: []models.SignInMethod{models.SignInMethodGoogle}})
			return
		}
		writeJSON(t, w, http.StatusOK, models.SignInMethodsResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	methods, err := a.SignInMethods(context.Background(), "g@example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.SignInMethod{models.SignInMethodGoogle}, methods)

	methods, err = a.SignInMethods(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, methods)
	assert.Empty(t, methods)
}

func TestRequestPasswordReset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/password-reset", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.NoError(t, a.RequestPasswordReset(context.Background(), "ana@example.com"))
}

// ── Residents and items ─────────────────────────────────────────────────────

func TestCreateResident_SendsBearerAndDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/residents", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"nombreCompleto":"Ana","sexo":"Femenino","zona":"Norte"}`, string(body))

		writeJSON(t, w, http.StatusCreated, models.CreatedResponse{ID: "res-1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")

	id, err := a.CreateResident(context.Background(), models.Resident{FullName: "Ana", Sex: models.SexFemale, Zone: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, "res-1", id)
}

func TestCreateResident_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing required field: zona"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreateResident(context.Background(), models.Resident{FullName: "Ana"})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "zona")
}

func TestListResidents_KeepsExtensionFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","nombreCompleto":"Ana","zona":"Norte","sexo":"Femenino","refugio":"San José"}]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	residents, err := a.ListResidents(context.Background())

	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, "Ana", residents[0].FullName)
	assert.Equal(t, "San José", residents[0].Extra["refugio"])
}

func TestListResidents_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListResidents(context.Background())

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.Item{{ID: "1", Title: "Mantas"}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	items, err := a.ListItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Item{{ID: "1", Title: "Mantas"}}, items)
}

// ── Reports ─────────────────────────────────────────────────────────────────

func TestReportRows_KeepsKeyOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "r2", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"rows":[{"zona":"Norte","total":2},{"zona":"Sur","total":1}]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	rows, err := a.ReportRows(context.Background(), "r2")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"zona", "total"}, rows[0].Keys())
	total, _ := rows[0].Get("total")
	assert.Equal(t, "2", total)
}

func TestListReports_MixedCreatedAtFormats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"r1","title":"Habitantes","createdAt":"2024-05-01T10:30:00Z"},
			{"id":"r2","title":"Por zona","createdAt":"2024-05-01"},
			{"id":"r3","title":"Mensual","createdAt":"mayo 2024"}
		]`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	reports, err := a.ListReports(context.Background())

	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), reports[0].CreatedAt.Time.UTC())
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), reports[1].CreatedAt.Time)
	assert.True(t, reports[2].CreatedAt.Time.IsZero())
	assert.Equal(t, "mayo 2024", reports[2].CreatedAt.Raw)
}

func TestListReports_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListReports(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/download", r.URL.Path)
		assert.Equal(t, "xlsx", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="Por_zona.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	out, err := a.DownloadReport(context.Background(), "r2", "xlsx")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "Por_zona.pdf", out.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), out.Data)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1.2.0\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	v, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestRequest_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := a.ListItems(ctx)
	assert.Error(t, err)
}

// ── Session token ───────────────────────────────────────────────────────────

func TestToken_ClearedBySetTokenEmpty(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.SetToken("tok")
	a.SetToken("")

	assert.Empty(t, a.Token())
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
