package llm

import "testing"

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_OpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	client, err := NewClient("openai", "gpt-4o", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	openaiClient, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if openaiClient.Model() != "gpt-4o" {
		t.Errorf("model = %q, want %q", openaiClient.Model(), "gpt-4o")
	}
}

func TestNewClient_OpenAI_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewClient("openai", "gpt-4o", ""); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is unset")
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("unknown", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json code block",
			input: "Here you go:\n```json\n{\"a\": 1}\n```\n",
			want:  `{"a": 1}`,
		},
		{
			name:  "plain code block",
			input: "```\n[1, 2, 3]\n```",
			want:  `[1, 2, 3]`,
		},
		{
			name:  "raw json with prose",
			input: `The answer is {"ok": true} as requested.`,
			want:  `{"ok": true}`,
		},
		{
			name:  "nested braces",
			input: `{"outer": {"inner": 2}} trailing`,
			want:  `{"outer": {"inner": 2}}`,
		},
		{
			name:  "no json at all",
			input: "plain text",
			want:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
