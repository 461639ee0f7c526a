package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// --- Gemini API Configuration ---
const (
	defaultAPIURL  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	defaultTimeout = 30 * time.Second
)

// --- Structs for Gemini API Request/Response ---

type Payload struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text,omitempty"`
}

// GenerationConfig bounds a single call. The same struct is reused across
// modes; only the budgets differ.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP,omitempty"`
}

type Response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// --- Call outcomes ---

// OutcomeKind tags the result of one call attempt. There is exactly one
// attempt per stage; callers decide between fallback synthesis and failure
// based on the tag, never by retrying here.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeTimeout
	OutcomeHTTPError
	OutcomeEmpty
)

// Outcome is the tagged result of one generation call.
// Text is set only for OutcomeSuccess; Status/Body only for OutcomeHTTPError.
type Outcome struct {
	Kind   OutcomeKind
	Text   string
	Status int
	Body   string
	Err    error
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Message returns a human-readable description of a failed outcome,
// suitable for the response "note"/"details" fields. Empty on success.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return ""
}

// UserContent wraps a single prompt as a one-turn user message.
func UserContent(text string) []Content {
	return []Content{{Role: "user", Parts: []Part{{Text: text}}}}
}

// --- Client ---

// Client issues generateContent calls against the Gemini REST API.
// The API key is read once at startup and is immutable afterwards.
type Client struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		// Per-call deadlines come from the request context; this is only a
		// hard ceiling so a missing deadline can never hang the process.
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithURL points the client at a non-default endpoint.
// Used by tests to target an httptest server.
func NewClientWithURL(apiKey, apiURL string) *Client {
	c := NewClient(apiKey)
	c.apiURL = apiURL
	return c
}

// Generate issues one generateContent call bounded by timeout and returns a
// tagged Outcome. The in-flight request is cancelled when the timeout
// elapses. Any response whose shape deviates from the expected contract is
// reported as OutcomeEmpty.
func (c *Client) Generate(ctx context.Context, contents []Content, cfg *GenerationConfig, timeout time.Duration) Outcome {
	payload := Payload{
		Contents:         contents,
		GenerationConfig: cfg,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Kind: OutcomeEmpty, Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.apiURL+"?key="+c.apiKey, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return Outcome{Kind: OutcomeHTTPError, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Msg("Calling Gemini API...")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return Outcome{Kind: OutcomeTimeout, Err: fmt.Errorf("request timed out after %s", timeout)}
		}
		// Transport-level failures carry no status; callers handle them the
		// same way as a non-200 response.
		return Outcome{Kind: OutcomeHTTPError, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read the error body from Google so the caller can surface it.
		body, _ := io.ReadAll(resp.Body)
		return Outcome{
			Kind:   OutcomeHTTPError,
			Status: resp.StatusCode,
			Body:   string(body),
			Err:    fmt.Errorf("API returned non-200 status: %s, Body: %s", resp.Status, string(body)),
		}
	}

	var geminiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return Outcome{Kind: OutcomeEmpty, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	text := ExtractText(geminiResp)
	if text == "" {
		return Outcome{Kind: OutcomeEmpty, Err: fmt.Errorf("no content found in Gemini response")}
	}

	return Outcome{Kind: OutcomeSuccess, Text: text}
}

// ExtractText concatenates every text part of the first candidate.
// An absent candidate list or all-empty parts yield "".
func ExtractText(resp Response) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	return builder.String()
}
