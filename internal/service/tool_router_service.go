package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-helpdesk-be/internal/constant"
	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/entity"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/guard"
	"ai-helpdesk-be/pkg/llm"
	"ai-helpdesk-be/pkg/tools"
	"ai-helpdesk-be/pkg/utils"
)

// routerTemperature keeps the routing model near-deterministic.
const routerTemperature = 0.01

// IToolRouterService maps natural-language requests onto the closed tool
// registry. Route never returns an error: every failure in the model call or
// its output parsing is downgraded to a typed refusal outcome, with the
// underlying cause logged.
type IToolRouterService interface {
	Route(ctx context.Context, request *dto.RouteRequest) *dto.RouteResponse
}

type toolRouterService struct {
	llmProvider llm.LLMProvider
	registry    *tools.Registry
	denylist    *guard.Denylist
	logger      logger.ILogger
}

func NewToolRouterService(
	llmProvider llm.LLMProvider,
	registry *tools.Registry,
	denylist *guard.Denylist,
	log logger.ILogger,
) IToolRouterService {
	return &toolRouterService{
		llmProvider: llmProvider,
		registry:    registry,
		denylist:    denylist,
		logger:      log,
	}
}

func (s *toolRouterService) Route(ctx context.Context, request *dto.RouteRequest) *dto.RouteResponse {
	if s.denylist.Blocked(request.Question) {
		s.logger.Warn("tools", "request blocked by denylist", nil)
		return refusal()
	}

	call, err := s.route(ctx, request.Question)
	if err != nil {
		s.logger.Warn("tools", "routing fell back to refusal", map[string]interface{}{"error": err.Error()})
		return refusal()
	}

	if call.Tool == entity.ToolRefuse || !s.registry.Has(call.Tool) {
		if call.Tool != entity.ToolRefuse {
			s.logger.Warn("tools", "model named unregistered tool", map[string]interface{}{"tool": call.Tool})
		}
		return refusal()
	}

	result, err := s.registry.Dispatch(call.Tool, call.Args)
	if err != nil {
		s.logger.Warn("tools", "tool dispatch failed", map[string]interface{}{
			"tool":  call.Tool,
			"error": err.Error(),
		})
		return refusal()
	}

	s.logger.Info("tools", "tool executed", map[string]interface{}{"tool": call.Tool})
	return &dto.RouteResponse{
		FinalAnswer: renderResult(result),
		ToolCalls: []dto.ToolCallDTO{{
			Tool:   call.Tool,
			Args:   call.Args,
			Result: result,
		}},
	}
}

// route asks the model for a tool call and parses the first element of the
// JSON list it was instructed to emit.
func (s *toolRouterService) route(ctx context.Context, question string) (*entity.ToolCall, error) {
	messages := []llm.Message{
		{Role: "system", Content: constant.RouterSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("User Request: %s\nOutput JSON:", question)},
	}

	raw, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(routerTemperature))
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	listJSON, err := utils.ExtractJSONList(raw)
	if err != nil {
		return nil, fmt.Errorf("locating tool list: %w", err)
	}

	var calls []entity.ToolCall
	if err := json.Unmarshal([]byte(listJSON), &calls); err != nil {
		return nil, fmt.Errorf("parsing tool list: %w", err)
	}
	if len(calls) == 0 {
		return nil, fmt.Errorf("empty tool list")
	}
	return &calls[0], nil
}

func refusal() *dto.RouteResponse {
	return &dto.RouteResponse{
		FinalAnswer: constant.RefusalMessage,
		ToolCalls:   []dto.ToolCallDTO{},
		Refused:     true,
	}
}

func renderResult(result interface{}) string {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(data)
}
