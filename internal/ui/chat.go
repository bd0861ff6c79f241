package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/agent"
	"github.com/anandpillai/mitra/internal/llm"
)

func (a *App) chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the assistant",
		Long: `Talk to the assistant in natural language.

With a message argument, sends it and prints the reply. Without arguments,
starts an interactive session; type "exit" or "quit" to leave. Conversation
history is kept per day so context carries across invocations.`,
		Example: `  mitra chat "schedule a 90 minute writing block tomorrow"
  mitra chat`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context(), args)
		},
	}
}

func (a *App) runChat(ctx context.Context, args []string) error {
	send, err := a.buildSender(ctx)
	if err != nil {
		return err
	}

	if message := strings.TrimSpace(strings.Join(args, " ")); message != "" {
		reply, err := send(ctx, message)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	fmt.Println(formatMuted("Interactive session. Type \"exit\" to leave."))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(formatHeader("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		reply, err := send(ctx, input)
		if err != nil {
			fmt.Println(formatFail("error: " + err.Error()))
			continue
		}
		fmt.Println("mitra> " + reply)
	}
}

type sendFunc func(ctx context.Context, message string) (string, error)

// buildSender wires the chat path. The OpenAI provider gets the full tool
// loop; other providers fall back to plain chat with history.
func (a *App) buildSender(ctx context.Context) (sendFunc, error) {
	history, err := agent.NewHistory(a.config.Schedule.HistoryDir, a.zone)
	if err != nil {
		return nil, err
	}

	if a.config.LLM.Provider == llm.ProviderOpenAI || a.config.LLM.Provider == "" {
		client, err := llm.NewOpenAIClient(a.config.LLM.Model, a.config.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		deps, err := a.agentDeps(ctx)
		if err != nil {
			return nil, err
		}
		ag := agent.New(client, agent.NewRegistry(deps), history, a.zone)
		return ag.Send, nil
	}

	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		return nil, err
	}
	return a.plainSender(client, history), nil
}

func (a *App) agentDeps(ctx context.Context) (agent.Deps, error) {
	if err := a.ensureStore(); err != nil {
		return agent.Deps{}, err
	}
	if err := a.ensureTodos(); err != nil {
		return agent.Deps{}, err
	}
	if err := a.ensureRepo(); err != nil {
		return agent.Deps{}, err
	}
	scheduler, err := a.callScheduler(ctx)
	if err != nil {
		return agent.Deps{}, err
	}
	engine, err := a.engine(ctx)
	if err != nil {
		return agent.Deps{}, err
	}

	return agent.Deps{
		Schedule:        a.store,
		Todos:           a.todos,
		Events:          a.events,
		Engine:          engine,
		Contacts:        a.repo,
		Calls:           scheduler,
		Integrations:    a.integrations(),
		Zone:            a.zone,
		DefaultDuration: a.defaultDuration(),
	}, nil
}

func (a *App) plainSender(client llm.Client, history *agent.History) sendFunc {
	return func(ctx context.Context, message string) (string, error) {
		recent, err := history.Recent(20)
		if err != nil {
			return "", err
		}

		now := time.Now().In(a.zone)
		messages := make([]llm.Message, 0, len(recent)+2)
		messages = append(messages, llm.Message{
			Role: "system",
			Content: fmt.Sprintf("You are Mitra, a reliable personal assistant. The user operates in the %s timezone. Today is %s.",
				a.zone.String(), now.Format("Monday, January 2, 2006")),
		})
		messages = append(messages, recent...)
		messages = append(messages, llm.Message{Role: "user", Content: message})

		reply, err := client.Chat(ctx, messages)
		if err != nil {
			return "", err
		}
		if err := history.Append("user", message); err != nil {
			return reply, err
		}
		if err := history.Append("assistant", reply); err != nil {
			return reply, err
		}
		return reply, nil
	}
}
