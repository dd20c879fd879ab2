package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/internal/validators"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateResident(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(42)

	body := `{"nombreCompleto":"Ana","sexo":"Femenino","zona":"Norte","talla":"M"}`
	m.residents.EXPECT().
		CreateResident(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, r models.Resident) (models.Resident, error) {
			assert.Equal(t, "Ana", r.FullName)
			assert.Equal(t, map[string]string{"talla": "M"}, r.Extra)
			r.ID = "res-1"
			return r, nil
		})

	rec := serve(h, authedRequest(http.MethodPost, "/api/residents", []byte(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"res-1"}`, rec.Body.String())
}

func TestCreateResident_ValidationMessage(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(42)

	invalid := fmt.Errorf("%w: %w: zona", service.ErrInvalidResident, validators.ErrMissingField)
	m.residents.EXPECT().CreateResident(gomock.Any(), int64(42), gomock.Any()).Return(models.Resident{}, invalid)

	rec := serve(h, authedRequest(http.MethodPost, "/api/residents", []byte(`{"nombreCompleto":"Ana"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, invalid.Error(), strings.TrimSpace(rec.Body.String()))
}

func TestCreateResident_StorageError(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(42)
	m.residents.EXPECT().CreateResident(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Resident{}, errors.New("disk I/O error"))

	rec := serve(h, authedRequest(http.MethodPost, "/api/residents", []byte(`{"nombreCompleto":"Ana"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk")
}

func TestCreateResident_InvalidToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), "session-token").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rec := serve(h, authedRequest(http.MethodPost, "/api/residents", []byte(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListResidents(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(42)
	m.residents.EXPECT().ListResidents(gomock.Any()).Return([]models.Resident{
		{ID: "a", FullName: "Ana", Sex: models.SexFemale, Zone: "Norte"},
	}, nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/residents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":"a","nombreCompleto":"Ana","sexo":"Femenino","zona":"Norte"}]`, rec.Body.String())
}

func TestListResidents_EmptyIsArray(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(42)
	m.residents.EXPECT().ListResidents(gomock.Any()).Return(nil, nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/residents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}
