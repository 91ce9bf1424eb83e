// Package ai wraps the generative-text provider used for report summaries.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrNotConfigured no API key was provided.
	ErrNotConfigured = errors.New("ai provider not configured")
	// ErrEmptyResponse the provider answered without text.
	ErrEmptyResponse = errors.New("ai provider returned no text")
)

// Generator turns a prompt into plain text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. An empty apiKey yields ErrNotConfigured.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Unconfigured Generator that always fails with ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

const promptTemplate = `Anda adalah asisten administrasi untuk sebuah pondok pesantren bernama %s.
Tugas Anda adalah menganalisis data laporan dan memberikan ringkasan yang jelas, singkat, dan bermanfaat.
Fokus pada tren utama, anomali, atau santri yang memerlukan perhatian khusus.
Berikan jawaban dalam format poin-poin menggunakan Bahasa Indonesia.

Berikut adalah data laporan %s dalam format JSON:
%s

Berikan ringkasan analisis Anda.`

// SummaryPrompt embeds at most limit records, indented by two spaces, in the
// summary prompt.
func SummaryPrompt(institution, reportType string, records []json.RawMessage, limit int) (string, error) {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	preview, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return fmt.Sprintf(promptTemplate, institution, reportType, preview), nil
}
