package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/drive_thru_order_app/internal/adapters/llm"
	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolCallResponse(name, arguments string) map[string]any {
	return map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-3.5-turbo",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "tool_calls",
			"message": map[string]any{
				"role": "assistant",
				"tool_calls": []any{map[string]any{
					"id":   "call_1",
					"type": "function",
					"function": map[string]any{
						"name":      name,
						"arguments": arguments,
					},
				}},
			},
		}},
	}
}

func newServer(t *testing.T, status int, body any) (*httptest.Server, *map[string]any) {
	t.Helper()
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestTranslate_PlaceOrder(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK,
		toolCallResponse("place_order", `{"items":[{"item_type":"burger","quantity":1},{"item_type":"fries","quantity":1}]}`))
	translator := llm.NewOpenAITranslator(srv.Client(), srv.URL, "test-key", "gpt-3.5-turbo")

	action, err := translator.Translate(context.Background(), "I want a burger and a fry")
	require.NoError(t, err)
	require.NotNil(t, action.Place)
	assert.Nil(t, action.Cancel)
	assert.Equal(t, []domain.OrderLine{
		{ItemType: domain.Burger, Quantity: 1},
		{ItemType: domain.Fries, Quantity: 1},
	}, action.Place.Lines)

	req := *captured
	assert.Equal(t, "gpt-3.5-turbo", req["model"])
	assert.Equal(t, "auto", req["tool_choice"])
	assert.Len(t, req["tools"], 2)
	messages := req["messages"].([]any)
	assert.Equal(t, "I want a burger and a fry", messages[1].(map[string]any)["content"])
}

func TestTranslate_NoToolCallIsUnintelligible(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, map[string]any{
		"choices": []any{map[string]any{
			"message": map[string]any{"role": "assistant", "content": "Sorry?"},
		}},
	})
	translator := llm.NewOpenAITranslator(srv.Client(), srv.URL, "test-key", "gpt-3.5-turbo")

	_, err := translator.Translate(context.Background(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrUnintelligible)
}

func TestTranslate_LegacyFunctionCall(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, map[string]any{
		"choices": []any{map[string]any{
			"message": map[string]any{
				"role":          "assistant",
				"function_call": map[string]any{"name": "cancel_items", "arguments": `{"items":[{"cancel_all":true}]}`},
			},
		}},
	})
	translator := llm.NewOpenAITranslator(srv.Client(), srv.URL, "test-key", "gpt-3.5-turbo")

	action, err := translator.Translate(context.Background(), "cancel everything")
	require.NoError(t, err)
	require.NotNil(t, action.Cancel)
	assert.True(t, action.Cancel.CancelAll)
}

func TestTranslate_ProviderErrorIsUpstream(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"type": "invalid_request_error", "message": "Incorrect API key provided"},
	})
	translator := llm.NewOpenAITranslator(srv.Client(), srv.URL, "test-key", "gpt-3.5-turbo")

	_, err := translator.Translate(context.Background(), "a burger")
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestTranslate_TransportFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	translator := llm.NewOpenAITranslator(nil, url, "test-key", "gpt-3.5-turbo")
	_, err := translator.Translate(context.Background(), "a burger")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		arguments string
		check     func(t *testing.T, action domain.Action)
		wantErr   error
	}{
		{
			name:      "cancel by order number",
			tool:      "cancel_items",
			arguments: `{"items":[{"order_number":2}]}`,
			check: func(t *testing.T, action domain.Action) {
				require.NotNil(t, action.Cancel)
				require.NotNil(t, action.Cancel.OrderNumber)
				assert.Equal(t, 2, *action.Cancel.OrderNumber)
				assert.Empty(t, action.Cancel.Lines)
			},
		},
		{
			name:      "cancel loose items",
			tool:      "cancel_items",
			arguments: `{"items":[{"item_type":"drink","quantity":1}]}`,
			check: func(t *testing.T, action domain.Action) {
				require.NotNil(t, action.Cancel)
				assert.Equal(t, []domain.OrderLine{{ItemType: domain.Drink, Quantity: 1}}, action.Cancel.Lines)
				assert.False(t, action.Cancel.CancelAll)
			},
		},
		{
			name:      "cancel with empty items resolves later",
			tool:      "cancel_items",
			arguments: `{"items":[]}`,
			check: func(t *testing.T, action domain.Action) {
				require.NotNil(t, action.Cancel)
				assert.Empty(t, action.Cancel.Lines)
			},
		},
		{
			name:      "cancel item missing quantity",
			tool:      "cancel_items",
			arguments: `{"items":[{"item_type":"drink"}]}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "place with zero quantity",
			tool:      "place_order",
			arguments: `{"items":[{"item_type":"burger","quantity":0}]}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "place with negative quantity",
			tool:      "place_order",
			arguments: `{"items":[{"item_type":"burger","quantity":-2}]}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "cancel item with negative quantity",
			tool:      "cancel_items",
			arguments: `{"items":[{"item_type":"drink","quantity":-1}]}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "place with no items",
			tool:      "place_order",
			arguments: `{"items":[]}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "malformed arguments",
			tool:      "place_order",
			arguments: `{"items":`,
			wantErr:   apperrors.ErrUnintelligible,
		},
		{
			name:      "unknown tool",
			tool:      "refund",
			arguments: `{}`,
			wantErr:   apperrors.ErrUnintelligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := llm.ParseToolCall(tt.tool, tt.arguments)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, action)
		})
	}
}
