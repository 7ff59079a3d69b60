// Package chatbot answers help-desk questions for the crisis map users.
package chatbot

import (
	"context"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	systemPrompt = "You are a helpful assistant for a crisis management system. Keep answers short and practical."

	ReportHint      = " If you need to report an incident, use the 'Report Incident' button in the navigation menu."
	EmergencyNotice = "For immediate emergencies, please call emergency services directly. This system is for reporting and tracking incidents."
	NoAnswer        = "Sorry, I could not process your request."
	Unavailable     = "I'm having trouble connecting right now. Please try again later."
)

// ChatCompleter is the slice of the OpenAI client the responder needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Responder struct {
	client    ChatCompleter
	model     string
	maxTokens int
}

// NewResponder wraps client. A nil client makes every reply Unavailable.
func NewResponder(client ChatCompleter) *Responder {
	return &Responder{client: client, model: openai.GPT3Dot5Turbo, maxTokens: 150}
}

// NewOpenAIResponder builds a responder on the OpenAI API, or one without a
// model when apiKey is empty.
func NewOpenAIResponder(apiKey string) *Responder {
	if apiKey == "" {
		log.Println("[chatbot] OPENAI_API_KEY not set, chat assistant disabled")
		return NewResponder(nil)
	}
	return NewResponder(openai.NewClient(apiKey))
}

// Reply asks the model about message and adds the crisis-desk guidance.
func (r *Responder) Reply(ctx context.Context, message string) string {
	if r.client == nil {
		return Unavailable
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		log.Printf("[chatbot] completion failed: %v", err)
		return Unavailable
	}

	reply := NoAnswer
	if len(resp.Choices) > 0 {
		if text := strings.TrimSpace(resp.Choices[0].Message.Content); text != "" {
			reply = text
		}
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "incident") || strings.Contains(lower, "report"):
		reply += ReportHint
	case strings.Contains(lower, "emergency"):
		reply = EmergencyNotice
	}
	return reply
}
