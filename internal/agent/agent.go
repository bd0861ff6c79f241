package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"

	"github.com/anandpillai/mitra/internal/llm"
)

const (
	// historyLimit bounds how many prior messages are replayed into context.
	historyLimit = 20

	// maxToolRounds bounds how many times the model may chain tool calls
	// before we require a plain reply.
	maxToolRounds = 8
)

// Agent runs the function-calling conversation loop against OpenAI.
type Agent struct {
	client   openai.Client
	model    string
	registry *Registry
	history  *History
	zone     *time.Location
}

// New builds an Agent over an OpenAI client, a tool registry and a history store.
func New(client *llm.OpenAIClient, registry *Registry, history *History, zone *time.Location) *Agent {
	return &Agent{
		client:   client.API(),
		model:    client.Model(),
		registry: registry,
		history:  history,
		zone:     zone,
	}
}

func (a *Agent) systemPrompt() string {
	now := time.Now().In(a.zone)
	return fmt.Sprintf(`You are Mitra, a disciplined and reliable personal assistant that manages the user's daily schedule, calendar, to-do list and contacts.

Do not invent or assume tasks, reminders or events unless the user provides them.
Never summarize or modify tasks unless asked to.
When showing tasks or events, preserve their original wording and order.
The user operates in the %s timezone; interpret all dates and times there.
Use the available tools to read or change state. Never claim an action succeeded without calling the tool for it.

Today is %s.`, a.zone.String(), now.Format("Monday, January 2, 2006"))
}

// Send runs one user turn: the model may chain tool calls, whose results are
// fed back until it produces a plain reply. The user message and the final
// reply are appended to today's history.
func (a *Agent) Send(ctx context.Context, userInput string) (string, error) {
	recent, err := a.history.Recent(historyLimit)
	if err != nil {
		return "", fmt.Errorf("loading history: %w", err)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(recent)+2)
	messages = append(messages, openai.SystemMessage(a.systemPrompt()))
	for _, msg := range recent {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userInput))

	params := openai.ChatCompletionNewParams{
		Model:    a.model,
		Messages: messages,
		Tools:    a.registry.Definitions(),
	}

	var reply string
	for round := 0; ; round++ {
		completion, err := a.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("no response choices returned")
		}

		message := completion.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			reply = message.Content
			break
		}
		if round >= maxToolRounds {
			return "", fmt.Errorf("model exceeded %d tool rounds without replying", maxToolRounds)
		}

		params.Messages = append(params.Messages, message.ToParam())
		for _, call := range message.ToolCalls {
			result := a.registry.Dispatch(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))
		}
	}

	if err := a.history.Append("user", userInput); err != nil {
		return reply, fmt.Errorf("saving history: %w", err)
	}
	if err := a.history.Append("assistant", reply); err != nil {
		return reply, fmt.Errorf("saving history: %w", err)
	}
	return reply, nil
}
