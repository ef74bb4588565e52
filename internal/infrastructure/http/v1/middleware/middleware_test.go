package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/pkg/logger"
)

// newTestEngine mirrors the router's middleware order.
func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Recovery())
	engine.Use(Trace())
	engine.Use(Logger(logger.Default()))
	engine.Use(ErrorHandler())
	return engine
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(rec, req)

	var body errorBody
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestRecovery_PanicRendersInternalError(t *testing.T) {
	engine := newTestEngine()
	engine.GET("/boom", func(c *gin.Context) {
		panic("something broke")
	})

	rec, body := doRequest(t, engine, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestErrorHandler_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        apperror.NewValidation("bad payload"),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeValidation,
		},
		{
			name:       "insufficient stock",
			err:        apperror.NewInsufficientStock("p1", 10, 3),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeInsufficientStock,
		},
		{
			name:       "invalid transition",
			err:        apperror.NewInvalidTransition("sales order", "completed", "confirmed"),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeInvalidTransition,
		},
		{
			name:       "not found",
			err:        apperror.NewNotFound("product", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperror.CodeNotFound,
		},
		{
			name:       "duplicate",
			err:        apperror.NewDuplicate("products", "code", "GSK-001"),
			wantStatus: http.StatusConflict,
			wantCode:   apperror.CodeDuplicate,
		},
		{
			name:       "concurrent modification",
			err:        apperror.NewConcurrentModification("products", "abc"),
			wantStatus: http.StatusConflict,
			wantCode:   apperror.CodeConcurrentModification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			engine.POST("/op", func(c *gin.Context) {
				_ = c.Error(tt.err)
				c.Abort()
			})

			rec, body := doRequest(t, engine, http.MethodPost, "/op")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
