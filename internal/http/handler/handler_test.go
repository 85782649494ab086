package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wakili/internal/http/middleware"
	"wakili/internal/identity"
	"wakili/internal/model"
	"wakili/internal/proxy"
	"wakili/internal/service"
	serviceMocks "wakili/internal/service/mocks"
	"wakili/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCaller = identity.Caller("user-abc")

func newTestApp(svc service.AdvisorService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.CallerIdentity())
	RegisterRoutes(app, svc)
	return app
}

func jsonRequest(method, target string, body any, caller identity.Caller) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != identity.Anonymous {
		req.Header.Set(middleware.CallerIDHeader, caller.String())
	}
	return req
}

func strptr(s string) *string { return &s }

func TestHealthCheck(t *testing.T) {
	app := newTestApp(new(serviceMocks.MockAdvisorService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
}

func TestLivenessProbe(t *testing.T) {
	app := newTestApp(new(serviceMocks.MockAdvisorService))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateAdvice(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		rid := "1234567890"
		mockSvc.On("GenerateAdvice", mock.Anything, testCaller, mock.MatchedBy(func(r model.LegalRequest) bool {
			return r.Prompt == "Can I break my lease?"
		})).Return(&model.LegalResponse{
			Response:  "Generally yes, with notice.",
			Status:    "success",
			RequestID: &rid,
		}, nil).Once()

		req := jsonRequest(http.MethodPost, "/v1/advice", map[string]any{"prompt": "Can I break my lease?"}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res model.LegalResponse
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Generally yes, with notice.", res.Response)
		assert.Equal(t, "success", res.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing prompt", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		req := jsonRequest(http.MethodPost, "/v1/advice", map[string]any{}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_FIELD", res.Error.Code)
		assert.NotEmpty(t, res.RequestID)
		mockSvc.AssertNotCalled(t, "GenerateAdvice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GenerateAdvice", mock.Anything, identity.Anonymous, mock.Anything).
			Return(nil, identity.ErrUnauthorized).Once()

		req := jsonRequest(http.MethodPost, "/v1/advice", map[string]any{"prompt": "q"}, identity.Anonymous)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
	})
}

func TestGenerateDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		key := "doc_user-abc_1700000000000000000"
		doc := "LEGAL DOCUMENT: CONTRACT\n\nUse form X"
		mockSvc.On("GenerateDocument", mock.Anything, testCaller, mock.MatchedBy(func(r model.LegalRequest) bool {
			return r.Prompt == "termination terms" && r.DocumentType != nil && *r.DocumentType == "contract"
		})).Return(&model.LegalResponse{
			Response:  "Document generated successfully",
			Document:  &doc,
			Status:    "success",
			RequestID: &key,
		}, nil).Once()

		req := jsonRequest(http.MethodPost, "/v1/documents", map[string]any{
			"prompt":        "termination terms",
			"document_type": "contract",
		}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var res model.LegalResponse
		json.NewDecoder(resp.Body).Decode(&res)
		require.NotNil(t, res.RequestID)
		assert.Regexp(t, `^doc_user-abc_\d+$`, *res.RequestID)
		require.NotNil(t, res.Document)
		assert.Contains(t, *res.Document, "LEGAL DOCUMENT: CONTRACT")
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing document type", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GenerateDocument", mock.Anything, testCaller, mock.Anything).
			Return(nil, fmt.Errorf("%w: document_type", service.ErrMissingField)).Once()

		req := jsonRequest(http.MethodPost, "/v1/documents", map[string]any{"prompt": "terms"}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_FIELD", res.Error.Code)
		assert.Contains(t, res.Error.Message, "document_type")
	})

	t.Run("proxy transport failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GenerateDocument", mock.Anything, testCaller, mock.Anything).
			Return(nil, fmt.Errorf("completion proxy: %w", fmt.Errorf("%w: status 500", proxy.ErrTransport))).Once()

		req := jsonRequest(http.MethodPost, "/v1/documents", map[string]any{
			"prompt":        "terms",
			"document_type": "contract",
		}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "TRANSPORT_ERROR", res.Error.Code)
	})

	t.Run("proxy reported failure surfaces message", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GenerateDocument", mock.Anything, testCaller, mock.Anything).
			Return(nil, fmt.Errorf("completion proxy: %w", fmt.Errorf("%w: quota exceeded", proxy.ErrProxy))).Once()

		req := jsonRequest(http.MethodPost, "/v1/documents", map[string]any{
			"prompt":        "terms",
			"document_type": "contract",
		}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PROXY_ERROR", res.Error.Code)
		assert.Contains(t, res.Error.Message, "quota exceeded")
	})
}

func TestGetDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GetDocument", mock.Anything, testCaller, "doc_user-abc_42").
			Return("stored text", nil).Once()

		req := jsonRequest(http.MethodGet, "/v1/documents/doc_user-abc_42", nil, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "stored text", body["text"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GetDocument", mock.Anything, testCaller, "missing").
			Return("", fmt.Errorf("document missing: %w", store.ErrNotFound)).Once()

		req := jsonRequest(http.MethodGet, "/v1/documents/missing", nil, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})
}

func TestListUserDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockAdvisorService)
	app := newTestApp(mockSvc)

	docs := []model.Document{{Key: "doc_user-abc_1", Text: "a"}, {Key: "doc_user-abc_2", Text: "b"}}
	mockSvc.On("ListUserDocuments", mock.Anything, testCaller).Return(docs, nil).Once()

	req := jsonRequest(http.MethodGet, "/v1/documents", nil, testCaller)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data  []model.Document `json:"data"`
		Total int              `json:"total"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Total)
	mockSvc.AssertExpectations(t)
}

func TestGetProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GetProfile", mock.Anything, testCaller).
			Return(&model.UserProfile{Name: strptr("Asha"), DocumentCount: 2}, nil).Once()

		req := jsonRequest(http.MethodGet, "/v1/profile", nil, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var p model.UserProfile
		json.NewDecoder(resp.Body).Decode(&p)
		require.NotNil(t, p.Name)
		assert.Equal(t, "Asha", *p.Name)
		assert.Equal(t, uint32(2), p.DocumentCount)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GetProfile", mock.Anything, identity.Anonymous).
			Return(nil, identity.ErrUnauthorized).Once()

		req := jsonRequest(http.MethodGet, "/v1/profile", nil, identity.Anonymous)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("never touched", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("GetProfile", mock.Anything, testCaller).
			Return(nil, fmt.Errorf("profile: %w", store.ErrNotFound)).Once()

		req := jsonRequest(http.MethodGet, "/v1/profile", nil, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateUserName(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("UpdateUserName", mock.Anything, testCaller, "Asha").Return(nil).Once()

		req := jsonRequest(http.MethodPut, "/v1/profile/name", map[string]any{"name": "Asha"}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		req := jsonRequest(http.MethodPut, "/v1/profile/name", map[string]any{}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "UpdateUserName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAdvisorService)
		app := newTestApp(mockSvc)

		mockSvc.On("UpdateUserName", mock.Anything, testCaller, "Asha").
			Return(errors.New("unexpected")).Once()

		req := jsonRequest(http.MethodPut, "/v1/profile/name", map[string]any{"name": "Asha"}, testCaller)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := newTestApp(new(serviceMocks.MockAdvisorService))

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
