package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSonicJSONSerializer(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = SonicJSONSerializer{}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.JSON(http.StatusOK, HttpRes{Message: "ok", StatusCode: 200}))
	assert.JSONEq(t, `{"message":"ok","statusCode":200}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	var got HttpRes
	require.NoError(t, e.NewContext(req, httptest.NewRecorder()).Bind(&got))
	assert.Equal(t, "hi", got.Message)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	bad.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.Error(t, e.NewContext(bad, httptest.NewRecorder()).Bind(&got))
}
