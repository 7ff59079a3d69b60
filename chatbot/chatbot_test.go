package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	reply string
	err   error
	got   openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

func TestReply(t *testing.T) {
	tests := []struct {
		name    string
		message string
		reply   string
		err     error
		want    string
	}{
		{"plain", "hello", "Hi there!", nil, "Hi there!"},
		{"incident hint", "How do I log an Incident?", "Use the form.", nil, "Use the form." + ReportHint},
		{"report hint", "where to REPORT", "Here.", nil, "Here." + ReportHint},
		{"emergency", "This is an emergency", "Stay calm.", nil, EmergencyNotice},
		{"incident wins over emergency", "emergency incident", "Ok.", nil, "Ok." + ReportHint},
		{"empty model reply", "hello", "   ", nil, NoAnswer},
		{"model error", "emergency", "", errors.New("429"), Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{reply: tt.reply, err: tt.err}
			if got := NewResponder(fc).Reply(context.Background(), tt.message); got != tt.want {
				t.Fatalf("Reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplySendsMessage(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	NewResponder(fc).Reply(context.Background(), "status of the flood?")

	if fc.got.Model != openai.GPT3Dot5Turbo {
		t.Errorf("model = %q", fc.got.Model)
	}
	msgs := fc.got.Messages
	if len(msgs) != 2 || msgs[0].Role != openai.ChatMessageRoleSystem || msgs[1].Content != "status of the flood?" {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestReplyWithoutClient(t *testing.T) {
	if got := NewOpenAIResponder("").Reply(context.Background(), "hi"); got != Unavailable {
		t.Fatalf("Reply = %q, want %q", got, Unavailable)
	}
}
