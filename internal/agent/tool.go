// Package agent implements the assistant's chat loop: an OpenAI
// function-calling conversation whose tools operate on the schedule store,
// to-do list, calendar, contact book and outbound integrations.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"
)

// Tool is a single callable function exposed to the model. Run receives the
// raw JSON arguments the model produced and returns a human-readable result.
type Tool struct {
	Name        string
	Description string
	Parameters  shared.FunctionParameters
	Run         func(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry holds the tools available to a conversation, dispatchable by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewEmptyRegistry returns a registry with no tools.
func NewEmptyRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Re-registering a name replaces the previous tool.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Definitions renders the registry as OpenAI tool definitions.
func (r *Registry) Definitions() []openai.ChatCompletionToolUnionParam {
	defs := make([]openai.ChatCompletionToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters:  t.Parameters,
		}))
	}
	return defs
}

// Dispatch runs a tool by name. Failures are folded into the returned string
// so the conversation can continue and the model can react to them.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) string {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}
	result, err := t.Run(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

// objectSchema builds the JSON schema for a tool taking an object argument.
func objectSchema(properties map[string]any, required ...string) shared.FunctionParameters {
	schema := shared.FunctionParameters{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// prop is a shorthand for a string/integer property with a description.
func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}
