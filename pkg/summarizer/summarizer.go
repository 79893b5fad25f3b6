package summarizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultAPIURL is the OpenRouter chat-completions endpoint.
const DefaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// maxTranscriptChars bounds how much transcript is sent to the model.
const maxTranscriptChars = 4000

// fallbackSentences is how many leading sentences the extractive fallback keeps.
const fallbackSentences = 5

var ErrNoAPIKey = errors.New("no API key configured")

var sentenceEndings = regexp.MustCompile(`([.!?])\s+`)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarizer generates a summary of a transcript via the OpenRouter API,
// with a simple extractive fallback when the API is unavailable.
type Summarizer struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

// New creates a summarizer for the given API key and model.
func New(apiKey, model string) *Summarizer {
	return &Summarizer{
		apiKey: apiKey,
		model:  model,
		apiURL: DefaultAPIURL,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// SetAPIURL overrides the chat-completions endpoint (tests).
func (s *Summarizer) SetAPIURL(url string) {
	s.apiURL = url
}

// Summarize produces a summary of the transcript. It tries the LLM first and
// falls back to a simple extractive summary when the request fails.
func (s *Summarizer) Summarize(transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("cannot summarize empty transcript")
	}

	summary, err := s.summarizeWithLLM(transcript)
	if err != nil {
		log.Printf("LLM summarization failed, using fallback method: %v", err)
		return FallbackSummary(transcript, fallbackSentences), nil
	}
	return summary, nil
}

func (s *Summarizer) summarizeWithLLM(transcript string) (string, error) {
	if s.apiKey == "" {
		return "", ErrNoAPIKey
	}

	if len(transcript) > maxTranscriptChars {
		log.Printf("Truncating transcript from %d to %d characters", len(transcript), maxTranscriptChars)
		transcript = transcript[:maxTranscriptChars] + "..."
	}

	payload := chatRequest{
		Model: s.model,
		Messages: []message{
			{
				Role: "system",
				Content: "You are a helpful assistant that summarizes video transcripts. " +
					"Create a concise summary that captures the main points and key information " +
					"from the transcript. The summary should be well-structured and informative.",
			},
			{
				Role:    "user",
				Content: "Please summarize the following video transcript in 3-5 paragraphs:\n\n" + transcript,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read API response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse API response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("unexpected API response format: no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// FallbackSummary returns a simple extractive summary: the first n sentences
// of the transcript plus a note that it was generated without the model.
func FallbackSummary(transcript string, n int) string {
	sentences := splitSentences(transcript)
	if len(sentences) <= n {
		return transcript
	}

	summary := strings.Join(sentences[:n], " ")
	return summary + "\n\n(Note: This is a simple extractive summary generated as a fallback.)"
}

func splitSentences(text string) []string {
	marked := sentenceEndings.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
