package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SscSPs/drive_thru_order_app/internal/apperrors"
	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	portssvc "github.com/SscSPs/drive_thru_order_app/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OpenAITranslator implements portssvc.ActionTranslator against any API that
// speaks the OpenAI chat completions wire format.
type OpenAITranslator struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewOpenAITranslator creates a translator. baseURL is the API root, e.g.
// "https://api.openai.com/v1".
func NewOpenAITranslator(httpClient *http.Client, baseURL, apiKey, model string) *OpenAITranslator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAITranslator{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// Ensure OpenAITranslator implements portssvc.ActionTranslator
var _ portssvc.ActionTranslator = (*OpenAITranslator)(nil)

// Translate asks the model for exactly one tool call and maps it to an action.
func (t *OpenAITranslator) Translate(ctx context.Context, utterance string) (domain.Action, error) {
	wireRequest := openaiRequest{
		Model: t.model,
		Messages: []openaiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: utterance},
		},
		Tools:      orderTools(),
		ToolChoice: "auto",
	}

	body, err := json.Marshal(wireRequest)
	if err != nil {
		return domain.Action{}, fmt.Errorf("llm/openai: marshaling request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.Action{}, fmt.Errorf("llm/openai: creating request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+t.apiKey)

	httpResponse, err := t.httpClient.Do(httpRequest)
	if err != nil {
		return domain.Action{}, fmt.Errorf("%w: llm/openai: sending request: %v", apperrors.ErrUpstream, err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return domain.Action{}, readProviderError(httpResponse)
	}

	var wireResponse openaiResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&wireResponse); err != nil {
		return domain.Action{}, fmt.Errorf("%w: llm/openai: decoding response: %v", apperrors.ErrUpstream, err)
	}

	call, ok := wireResponse.firstCall()
	if !ok {
		return domain.Action{}, fmt.Errorf("%w: could not understand the order, please try rephrasing your request", apperrors.ErrUnintelligible)
	}
	return ParseToolCall(call.Name, call.Arguments)
}

// ParseToolCall maps a tool name and its JSON arguments to an action.
func ParseToolCall(name, arguments string) (domain.Action, error) {
	switch name {
	case toolPlaceOrder:
		var args placeOrderArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return domain.Action{}, err
		}
		lines := make([]domain.OrderLine, len(args.Items))
		for i, item := range args.Items {
			lines[i] = domain.OrderLine{ItemType: domain.ItemKind(item.ItemType), Quantity: item.Quantity}
		}
		return domain.Action{Place: &domain.PlaceOrderRequest{Lines: lines}}, nil

	case toolCancelItems:
		var args cancelItemsArgs
		if err := decodeArgs(arguments, &args); err != nil {
			return domain.Action{}, err
		}
		return cancelAction(args)

	default:
		return domain.Action{}, fmt.Errorf("%w: invalid request type %q", apperrors.ErrUnintelligible, name)
	}
}

// cancelAction reads the cancel shape from the first item the way the tool
// schema instructs: cancel_all, then order_number, otherwise loose lines.
func cancelAction(args cancelItemsArgs) (domain.Action, error) {
	req := domain.CancelRequest{}
	if len(args.Items) > 0 {
		first := args.Items[0]
		switch {
		case first.CancelAll:
			req.CancelAll = true
			return domain.Action{Cancel: &req}, nil
		case first.OrderNumber != nil:
			n := *first.OrderNumber
			req.OrderNumber = &n
			return domain.Action{Cancel: &req}, nil
		}
	}

	for _, item := range args.Items {
		line := lineArgs{ItemType: item.ItemType, Quantity: item.Quantity}
		if err := validate.Struct(line); err != nil {
			return domain.Action{}, fmt.Errorf("%w: invalid cancellation item: %v", apperrors.ErrUnintelligible, err)
		}
		req.Lines = append(req.Lines, domain.OrderLine{ItemType: domain.ItemKind(item.ItemType), Quantity: item.Quantity})
	}
	return domain.Action{Cancel: &req}, nil
}

func decodeArgs(arguments string, dst any) error {
	if err := json.Unmarshal([]byte(arguments), dst); err != nil {
		return fmt.Errorf("%w: failed to parse order details: %v", apperrors.ErrUnintelligible, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: no items specified: %v", apperrors.ErrUnintelligible, err)
	}
	return nil
}

// readProviderError parses {"error":{"type":"...","message":"..."}} bodies.
func readProviderError(httpResponse *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 4096))

	var wireError struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	message := string(body)
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		message = wireError.Error.Type + ": " + wireError.Error.Message
	}
	return fmt.Errorf("%w: llm/openai: HTTP %d: %s", apperrors.ErrUpstream, httpResponse.StatusCode, message)
}

// --- OpenAI wire types ---

type openaiRequest struct {
	Model      string          `json:"model"`
	Messages   []openaiMessage `json:"messages"`
	Tools      []openaiTool    `json:"tools,omitempty"`
	ToolChoice string          `json:"tool_choice,omitempty"`
}

type openaiMessage struct {
	Role         string              `json:"role"`
	Content      string              `json:"content,omitempty"`
	ToolCalls    []openaiToolCall    `json:"tool_calls,omitempty"`
	FunctionCall *openaiToolFunction `json:"function_call,omitempty"`
}

type openaiToolCall struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Function openaiToolFunction `json:"function"`
}

type openaiToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type openaiTool struct {
	Type     string               `json:"type"`
	Function openaiToolDefinition `json:"function"`
}

type openaiToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type openaiResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Index        int           `json:"index"`
	Message      openaiMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// firstCall returns the first tool call of the first choice, accepting the
// legacy function_call field from older compatible servers.
func (r openaiResponse) firstCall() (openaiToolFunction, bool) {
	if len(r.Choices) == 0 {
		return openaiToolFunction{}, false
	}
	message := r.Choices[0].Message
	if len(message.ToolCalls) > 0 {
		return message.ToolCalls[0].Function, true
	}
	if message.FunctionCall != nil && message.FunctionCall.Name != "" {
		return *message.FunctionCall, true
	}
	return openaiToolFunction{}, false
}
