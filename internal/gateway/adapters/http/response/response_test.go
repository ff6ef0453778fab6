package response_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/gateway/adapters/http/response"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: response.NewErrorHandler()})
	app.Get("/boom", func(fiber.Ctx) error { return errors.New("secret detail") })
	app.Get("/teapot", func(fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := readBody(t, resp)
	assert.JSONEq(t, `{"error":true,"message":"Internal Server Error"}`, body)
	assert.NotContains(t, body, "secret detail")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.JSONEq(t, `{"error":true,"message":"short and stout"}`, readBody(t, resp))
}

func TestBind(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	app := fiber.New()
	app.Post("/", func(ctx fiber.Ctx) error {
		var p payload
		if err := response.Bind(ctx, &p); err != nil {
			return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
		}
		return response.Message(ctx, p.Title)
	})

	sendAs := func(contentType, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}
	send := func(body string) *http.Response {
		return sendAs("application/json", body)
	}

	resp := send(`{"title":"T"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"error":false,"message":"T"}`, readBody(t, resp))

	resp = send("")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send("{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":true,"message":"Invalid request body"}`, readBody(t, resp))

	resp = sendAs("application/json; charset=utf-8", `{"title":"UTF"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"error":false,"message":"UTF"}`, readBody(t, resp))

	t.Run("body without json content type is ignored", func(t *testing.T) {
		for _, contentType := range []string{"", "text/plain"} {
			resp := sendAs(contentType, `{"title":"T"}`)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"error":false,"message":""}`, readBody(t, resp))
		}
	})
}
