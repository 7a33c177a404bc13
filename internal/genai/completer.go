// Package genai wraps the chat model behind task-shaped operations:
// interpreting a query into a plan, analyzing news, documents, and datasets,
// summarizing, and composing reports. Every operation has a deterministic
// fallback so the pipelines keep working with no model configured.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/ritik-gupta001/nexalyze/internal/config"
	"github.com/ritik-gupta001/nexalyze/internal/llm"
)

// Completer runs chat completions against a configured model. A nil chat
// model is valid and routes every call to its fallback.
type Completer struct {
	chat model.BaseChatModel
}

// NewCompleter builds a completer from app settings. Model construction
// failures are logged and absorbed: the completer still works, fallback-only.
func NewCompleter(ctx context.Context, settings config.LLMSettings) *Completer {
	chat, err := llm.NewChatModel(ctx, llm.FromSettings(settings))
	if err != nil {
		slog.Warn("chat model unavailable, using fallback analysis", "provider", settings.Provider, "error", err)
		return &Completer{}
	}
	slog.Info("chat model initialized", "provider", settings.Provider, "model", settings.Model)
	return &Completer{chat: chat}
}

// NewCompleterWithModel wraps an existing chat model; pass nil for
// fallback-only behavior.
func NewCompleterWithModel(chat model.BaseChatModel) *Completer {
	return &Completer{chat: chat}
}

// Enabled reports whether a chat model is wired in.
func (c *Completer) Enabled() bool {
	return c != nil && c.chat != nil
}

func (c *Completer) generate(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("no chat model configured")
	}
	resp, err := c.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// stripFences unwraps a markdown code fence around a JSON payload. Models
// frequently wrap structured output in ```json blocks despite instructions.
func stripFences(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(content)
}

// clip truncates s to at most n bytes. Inputs are ASCII-dominated analysis
// text; byte truncation is acceptable here.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
