package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockScope/internal/model"
)

const systemPrompt = "You are a financial analyst providing concise stock analysis."

// Client asks a chat-completions endpoint for a short stock summary. It never
// fails the request: every provider problem degrades to an explanatory string
// that flows forward like a normal analysis.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// NewClient creates an analysis client with optional proxy support. The 30s
// timeout bounds the whole round trip.
func NewClient(baseURL, apiKey, model, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze builds a prompt from the quote and returns the provider's summary,
// or a degraded placeholder string on any failure.
func (c *Client) Analyze(quote model.QuoteSnapshot) string {
	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(quote)},
		},
		MaxTokens:   500,
		Temperature: 0.7,
		TopP:        0.9,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("Unable to generate analysis: %v", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Unable to generate analysis: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			log.Printf("[ERROR] analysis request timed out")
			return "Unable to generate analysis: Request timed out"
		}
		log.Printf("[ERROR] analysis request failed: %v", err)
		return fmt.Sprintf("Unable to generate analysis: Network error - %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Unable to generate analysis: Network error - %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] analysis api error: status %d, body: %s", resp.StatusCode, string(respBody))
		return fmt.Sprintf("Unable to generate analysis. Error: %s", string(respBody))
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		log.Printf("[ERROR] decode analysis response: %v", err)
		return "Unable to generate analysis: Unexpected API response format"
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		log.Printf("[ERROR] unexpected analysis response shape: %s", string(respBody))
		return "Unable to generate analysis: Unexpected API response format"
	}
	return out.Choices[0].Message.Content
}

// buildPrompt embeds the quote fields, substituting "N/A" for anything the
// provider did not report.
func buildPrompt(q model.QuoteSnapshot) string {
	var b strings.Builder
	b.WriteString("Analyze the following stock data and provide a very concise 3-4 sentence summary:\n")
	b.WriteString(fmt.Sprintf("Current Price: $%s\n", numOrNA(q.CurrentPrice)))
	b.WriteString(fmt.Sprintf("Market Cap: $%s\n", groupedOrNA(q.MarketCap)))
	b.WriteString(fmt.Sprintf("P/E Ratio: %s\n", numOrNA(q.TrailingPE)))
	b.WriteString(fmt.Sprintf("52-Week High: $%s\n", numOrNA(q.High52w)))
	b.WriteString(fmt.Sprintf("52-Week Low: $%s\n", numOrNA(q.Low52w)))
	b.WriteString(fmt.Sprintf("Volume: %s\n\n", groupedOrNA(q.Volume)))
	b.WriteString("Focus on: 1) Current position vs 52-week range, " +
		"2) Key valuation insight from P/E ratio, 3) Brief outlook. " +
		"Use plain text without markdown formatting.")
	return b.String()
}

func numOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func groupedOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return humanize.Commaf(*v)
}
