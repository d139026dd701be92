package announce

import (
	"context"
	"errors"
	"fmt"
	"strings"

	httpclient "github.com/handiism/arcade-catalog/internal/http"
	"github.com/handiism/arcade-catalog/internal/model"
)

// Supported AI services.
const (
	ServiceOpenAI = "openai"
	ServiceClaude = "claude"
)

// MaxSentences bounds the generated announcement length.
const MaxSentences = 3

const (
	openAIURL    = "https://api.openai.com/v1/chat/completions"
	anthropicURL = "https://api.anthropic.com/v1/messages"

	openAIModel    = "gpt-4o-mini"
	anthropicModel = "claude-3-haiku-20240307"
)

// Generator produces announcement messages through a chat API.
type Generator struct {
	service string
	apiKey  string
	client  *httpclient.Client
}

// NewGenerator creates a Generator for the given service ("openai" or
// "claude").
func NewGenerator(service, apiKey string) (*Generator, error) {
	switch service {
	case ServiceOpenAI, ServiceClaude:
	default:
		return nil, fmt.Errorf("announce: unsupported service %q", service)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("announce: missing API key for %s", service)
	}
	return &Generator{
		service: service,
		apiKey:  apiKey,
		client:  httpclient.NewClient(),
	}, nil
}

// BuildPrompt composes the French prompt from the game's title and
// metadata. Missing metadata fields read as "Inconnu" so the prompt
// stays well-formed.
func BuildPrompt(title string, record *model.MetadataRecord) string {
	get := func(v string) string {
		if v == "" {
			return "Inconnu"
		}
		return v
	}

	var b strings.Builder
	b.WriteString("Tu es un expert en jeux vidéo rétro qui écrit des annonces ")
	b.WriteString("pour une newsletter hebdomadaire en français invitant les joueurs à tester ce jeu.\n\n")
	b.WriteString("Voici les informations sur le jeu de la semaine :\n\n")
	fmt.Fprintf(&b, "Titre : %s\n", title)
	fmt.Fprintf(&b, "Développeur : %s\n", get(record.Developer.String()))
	fmt.Fprintf(&b, "Année : %s\n", get(record.Year.String()))
	fmt.Fprintf(&b, "Genre : %s\n\n", get(record.Genre))
	b.WriteString("Ta tâche : Écrire une annonce en français qui décrit ce jeu de manière attrayante et engageante.\n\n")
	b.WriteString("RÈGLES STRICTES :\n")
	fmt.Fprintf(&b, "- Maximum %d phrases complètes\n", MaxSentences)
	b.WriteString("- Ton enthousiaste et positif, adressé à la deuxième personne du pluriel.\n")
	b.WriteString("- Décris pourquoi ce jeu est spécial ou amusant\n")
	b.WriteString("- Mentionne un aspect unique ou intéressant\n")
	b.WriteString("- Évite les clichés génériques\n")
	b.WriteString("- Écris en français naturel et fluide\n\n")
	fmt.Fprintf(&b, "Génère maintenant l'annonce pour %s :", title)
	return b.String()
}

// Generate asks the configured service for an announcement and cleans
// up the reply (quote stripping, newline collapsing, sentence clamp).
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var raw string
	var err error
	switch g.service {
	case ServiceOpenAI:
		raw, err = g.callOpenAI(ctx, prompt)
	case ServiceClaude:
		raw, err = g.callClaude(ctx, prompt)
	}
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(raw)
	text = strings.Trim(text, `"'`)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", errors.New("announce: empty response")
	}

	return ClampSentences(text, MaxSentences), nil
}

func (g *Generator) callOpenAI(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	request := struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		MaxTokens   int       `json:"max_tokens"`
		Temperature float64   `json:"temperature"`
	}{
		Model: openAIModel,
		Messages: []message{
			{Role: "system", Content: "Tu es un expert en jeux vidéo rétro qui écrit des annonces en français."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.8,
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}
	if err := g.client.PostJSON(ctx, openAIURL, headers, request, &response); err != nil {
		return "", fmt.Errorf("announce: openai request: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("announce: openai returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}

func (g *Generator) callClaude(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	request := struct {
		Model     string    `json:"model"`
		MaxTokens int       `json:"max_tokens"`
		Messages  []message `json:"messages"`
	}{
		Model:     anthropicModel,
		MaxTokens: 300,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	headers := map[string]string{
		"x-api-key":         g.apiKey,
		"anthropic-version": "2023-06-01",
	}
	if err := g.client.PostJSON(ctx, anthropicURL, headers, request, &response); err != nil {
		return "", fmt.Errorf("announce: anthropic request: %w", err)
	}
	if len(response.Content) == 0 {
		return "", errors.New("announce: anthropic returned no content")
	}
	return response.Content[0].Text, nil
}
