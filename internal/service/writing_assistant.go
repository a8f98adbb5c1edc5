package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell-api/internal/llm"
)

// WritingAssistant reescribe un fragmento seleccionado segun una instruccion.
type WritingAssistant struct {
	client llm.LLMClient
}

func NewWritingAssistant(client llm.LLMClient) *WritingAssistant {
	return &WritingAssistant{client: client}
}

// BuildRewritePrompt arma el prompt que se envia al modelo.
func BuildRewritePrompt(selected, task string) llm.Prompt {
	var sb strings.Builder
	sb.WriteString("You are a helpful writing assistant. Please help the user to replace the selected text.\n\n")
	sb.WriteString(fmt.Sprintf("Your task is: %s\n\n", task))
	sb.WriteString("Make sure to provide only exact 1 option as a response.")
	return llm.Prompt{
		System: sb.String(),
		User:   fmt.Sprintf("The selected text is: %s", selected),
	}
}

// Rewrite devuelve el texto propuesto por el modelo. Los errores del
// proveedor (*llm.APIError) se propagan sin envolver en otro tipo.
func (a *WritingAssistant) Rewrite(ctx context.Context, selected, task string) (string, error) {
	if strings.TrimSpace(task) == "" {
		return "", ErrInvalidInput
	}
	return a.client.Generate(ctx, BuildRewritePrompt(selected, task))
}
