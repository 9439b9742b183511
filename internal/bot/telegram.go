package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram talks to the Telegram Bot API over plain HTTP.
type Telegram struct {
	BotToken string
	Client   *http.Client

	apiBase string // overridable in tests
}

// NewTelegram creates a transport with optional proxy support.
func NewTelegram(botToken, proxyURL string) *Telegram {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Telegram{
		BotToken: botToken,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		apiBase: telegramAPIBase,
	}
}

func (t *Telegram) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.apiBase, t.BotToken, method)
}

// apiResult is the envelope every Bot API call comes back in.
type apiResult struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int `json:"message_id"`
	} `json:"result"`
	Description string `json:"description"`
}

func (t *Telegram) postJSON(method string, payload interface{}) (*apiResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(t.methodURL(method), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result apiResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%s decode: %w", method, err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API error: %s", result.Description)
	}
	return &result, nil
}

// SendText sends a message and returns its id so it can be edited or deleted
// later. No parse mode: placeholders and error edits carry arbitrary provider
// text, and unbalanced markup would make Telegram reject the call.
func (t *Telegram) SendText(chatID int64, text string) (int, error) {
	result, err := t.postJSON("sendMessage", map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return 0, err
	}
	return result.Result.MessageID, nil
}

// EditText replaces the content of a previously sent message.
func (t *Telegram) EditText(chatID int64, messageID int, text string) error {
	_, err := t.postJSON("editMessageText", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	})
	return err
}

// DeleteMessage removes a previously sent message.
func (t *Telegram) DeleteMessage(chatID int64, messageID int) error {
	_, err := t.postJSON("deleteMessage", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
	})
	return err
}

// SendPhoto uploads a PNG with a caption via multipart sendPhoto.
func (t *Telegram) SendPhoto(chatID int64, photo []byte, caption string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", fmt.Sprintf("%d", chatID)); err != nil {
		return fmt.Errorf("write chat_id: %w", err)
	}
	if err := w.WriteField("caption", caption); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}
	if err := w.WriteField("parse_mode", "Markdown"); err != nil {
		return fmt.Errorf("write parse_mode: %w", err)
	}
	part, err := w.CreateFormFile("photo", "chart.png")
	if err != nil {
		return fmt.Errorf("create photo part: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return fmt.Errorf("write photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := t.Client.Post(t.methodURL("sendPhoto"), w.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("sendPhoto: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
