package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"StockScope/internal/chart"
	"StockScope/internal/format"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/recorder"
	"StockScope/internal/symbol"
)

// Analyzer produces the narrative summary for a quote. It never fails; on
// provider trouble it returns an explanatory placeholder string instead.
type Analyzer interface {
	Analyze(quote model.QuoteSnapshot) string
}

// Renderer turns a price history into an encoded image.
type Renderer func(history []model.PricePoint) ([]byte, error)

// requestState names the stages a stock request moves through. Requests end
// in exactly one of stateDelivered, stateDegraded or stateFailed.
type requestState string

const (
	stateReceived   requestState = "received"
	stateFetching   requestState = "fetching"
	stateAnalyzing  requestState = "analyzing"
	stateRendering  requestState = "rendering"
	stateFormatting requestState = "formatting"
	stateDelivered  requestState = "delivered"
	stateDegraded   requestState = "degraded"
	stateFailed     requestState = "failed"
)

// Handler runs the stock-request pipeline for inbound messages. All entities
// it creates live and die within one request; concurrent requests share
// nothing mutable.
type Handler struct {
	Transport Transport
	Fetcher   marketdata.Fetcher
	Analyzer  Analyzer
	Render    Renderer
	Recorder  recorder.Recorder
}

// NewHandler wires the pipeline with the default chart renderer.
func NewHandler(t Transport, f marketdata.Fetcher, a Analyzer, rec recorder.Recorder) *Handler {
	return &Handler{
		Transport: t,
		Fetcher:   f,
		Analyzer:  a,
		Render:    chart.Render,
		Recorder:  rec,
	}
}

// HandleMessage routes one inbound text message: known commands get static
// replies, everything else is treated as a ticker symbol.
func (h *Handler) HandleMessage(chatID int64, text string) {
	switch text {
	case "/start":
		h.sendStatic(chatID, welcomeText)
	case "/help":
		h.sendStatic(chatID, helpText)
	case "/history":
		h.sendStatic(chatID, h.historyText())
	default:
		if strings.HasPrefix(text, "/") {
			h.sendStatic(chatID, helpText)
			return
		}
		h.HandleStock(chatID, strings.ToUpper(strings.TrimSpace(text)))
	}
}

// HandleStock runs the full pipeline for one ticker token. It never lets an
// error escape: every failure path ends in a user-visible message.
func (h *Handler) HandleStock(chatID int64, token string) {
	start := time.Now()
	transition(token, stateReceived)

	// Acknowledge before any slow work so the user gets immediate feedback.
	msgID, err := h.Transport.SendText(chatID, fmt.Sprintf("🔄 Processing %s... Please wait.", token))
	if err != nil {
		log.Printf("[ERROR] send placeholder for %s: %v", token, err)
		return
	}

	// Once the placeholder exists, nothing may escape: a panic anywhere in
	// the pipeline becomes the generic failure notice instead of taking the
	// process down mid-request.
	resolved := token
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] panic while processing %s: %v", resolved, r)
			h.editOrLog(chatID, msgID, fmt.Sprintf("❌ Error processing %s: %v\nPlease try again later.", token, r))
			h.record(token, resolved, stateFailed, fmt.Sprintf("panic: %v", r), start)
		}
	}()

	var guessed bool
	resolved, guessed = symbol.Resolve(token)
	log.Printf("[INFO] resolved %s -> %s", token, resolved)

	transition(resolved, stateFetching)
	data, err := h.Fetcher.FetchStock(resolved, guessed)
	if err != nil {
		log.Printf("[ERROR] fetch %s: %v", resolved, err)
		h.editOrLog(chatID, msgID, fmt.Sprintf("❌ Error: Unable to fetch data for %s. Error: %v", token, err))
		h.record(token, resolved, stateFailed, err.Error(), start)
		return
	}

	// The analysis always runs before the chart outcome is inspected, so the
	// text-only fallback can never reference a missing summary.
	transition(resolved, stateAnalyzing)
	analysisText := h.Analyzer.Analyze(data.Quote)

	transition(resolved, stateRendering)
	png, renderErr := h.Render(data.History)

	transition(resolved, stateFormatting)
	caption := format.StockMessage(token, data.Quote, analysisText)

	if renderErr != nil {
		log.Printf("[WARN] chart render for %s failed: %v, sending text-only fallback", resolved, renderErr)
		fallback := fmt.Sprintf("📊 *%s - Stock Analysis*\n\n"+
			"❌ Chart generation failed, but here's the analysis:\n\n%s", token, caption)
		h.editOrLog(chatID, msgID, fallback)
		h.record(token, resolved, stateDegraded, renderErr.Error(), start)
		return
	}

	if err := h.Transport.SendPhoto(chatID, png, caption); err != nil {
		log.Printf("[ERROR] send photo for %s: %v", resolved, err)
		h.editOrLog(chatID, msgID, fmt.Sprintf("❌ Error processing %s: %v\nPlease try again later.", token, err))
		h.record(token, resolved, stateFailed, err.Error(), start)
		return
	}
	if err := h.Transport.DeleteMessage(chatID, msgID); err != nil {
		log.Printf("[WARN] delete placeholder for %s: %v", resolved, err)
	}
	transition(resolved, stateDelivered)
	h.record(token, resolved, stateDelivered, "", start)
}

func transition(sym string, s requestState) {
	log.Printf("[INFO] %s: %s", sym, s)
}

// editOrLog replaces the placeholder content; if even that fails there is
// nothing left to do but log it.
func (h *Handler) editOrLog(chatID int64, messageID int, text string) {
	if err := h.Transport.EditText(chatID, messageID, text); err != nil {
		log.Printf("[ERROR] edit placeholder: %v", err)
	}
}

func (h *Handler) sendStatic(chatID int64, text string) {
	if _, err := h.Transport.SendText(chatID, text); err != nil {
		log.Printf("[ERROR] send reply: %v", err)
	}
}

func (h *Handler) record(token, resolved string, outcome requestState, errText string, start time.Time) {
	if err := h.Recorder.RecordRequest(&recorder.RequestEvent{
		Token:      token,
		Symbol:     resolved,
		Outcome:    string(outcome),
		Error:      errText,
		DurationMS: time.Since(start).Milliseconds(),
	}); err != nil {
		log.Printf("[ERROR] record request: %v", err)
	}
}

func (h *Handler) historyText() string {
	events, err := h.Recorder.RecentRequests(10)
	if err != nil {
		log.Printf("[ERROR] load request history: %v", err)
		return "History is unavailable right now."
	}
	if len(events) == 0 {
		return "No requests recorded yet."
	}

	var b strings.Builder
	b.WriteString("🕘 Recent requests:\n")
	for _, e := range events {
		b.WriteString(fmt.Sprintf("• %s %s: %s", e.CreatedAt.Format("01-02 15:04"), e.Symbol, e.Outcome))
		if e.Error != "" {
			b.WriteString(" (" + e.Error + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
