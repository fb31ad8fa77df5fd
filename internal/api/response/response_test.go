package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
)

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func TestSuccess_Returns200WithData(t *testing.T) {
	c, rec := setupTestContext()

	err := Success(c, map[string]string{"key": "value"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestSuccessWithMessage_Returns200WithMessage(t *testing.T) {
	c, rec := setupTestContext()

	err := SuccessWithMessage(c, map[string]string{"key": "value"}, "Operation successful")

	require.NoError(t, err)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Operation successful", resp.Message)
}

func TestCreated_Returns201WithData(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, Created(c, map[string]string{"id": "a1"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestNoContent_Returns204(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, NoContent(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCSV_SetsAttachmentHeaders(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, CSV(c, "accounts.csv", "ID,Email\na1,jane@gauntletai.com"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="accounts.csv"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "ID,Email\na1,jane@gauntletai.com", rec.Body.String())
}

func TestError_ReturnsCorrectStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.Validation("bad email"), http.StatusBadRequest, apperrors.CodeValidation},
		{"duplicate", apperrors.Duplicate("exists"), http.StatusConflict, apperrors.CodeDuplicateEntry},
		{"not found", apperrors.NotFound("account not found"), http.StatusNotFound, apperrors.CodeNotFound},
		{"store", apperrors.Store(errors.New("timeout"), "failed to access accounts"), http.StatusServiceUnavailable, apperrors.CodeStoreError},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, apperrors.CodeUnauthenticated},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, apperrors.CodeForbidden},
		{"unknown", errors.New("unknown error"), http.StatusInternalServerError, apperrors.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setupTestContext()

			require.NoError(t, Error(c, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, Error(c, errors.New("pq: password authentication failed")))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestError_PartialReconciliationCarriesSteps(t *testing.T) {
	c, rec := setupTestContext()
	err := apperrors.NewPartialReconciliationError("save forwarding", "account status update", "forwarding create",
		apperrors.Store(errors.New("timeout"), "failed to access forwarding config"))

	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp PartialErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.CodePartialReconciliation, resp.Code)
	assert.Equal(t, "save forwarding", resp.Operation)
	assert.Equal(t, "account status update", resp.Completed)
	assert.Equal(t, "forwarding create", resp.Failed)
}

func TestBadRequest_Returns400(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, BadRequest(c, "invalid input"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid input", resp.Error)
	assert.Equal(t, apperrors.CodeValidation, resp.Code)
}

func TestNotFound_Returns404(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, NotFound(c, "resource not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnauthorized_Returns401(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, Unauthorized(c, "missing authorization header"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.CodeUnauthenticated, resp.Code)
}

func TestInternalError_Returns500(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, InternalError(c, "internal server error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetHTTPStatus_MapsCodesCorrectly(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{apperrors.CodeValidation, http.StatusBadRequest},
		{apperrors.CodeDuplicateEntry, http.StatusConflict},
		{apperrors.CodeNotFound, http.StatusNotFound},
		{apperrors.CodeStoreError, http.StatusServiceUnavailable},
		{apperrors.CodePartialReconciliation, http.StatusInternalServerError},
		{apperrors.CodeUnauthenticated, http.StatusUnauthorized},
		{apperrors.CodeForbidden, http.StatusForbidden},
		{apperrors.CodeInternalError, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, getHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse_JSONStructure(t *testing.T) {
	c, rec := setupTestContext()

	require.NoError(t, BadRequest(c, "test error"))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "error")
	assert.Contains(t, raw, "code")
}
