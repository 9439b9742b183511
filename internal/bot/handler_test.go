package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/recorder"
)

// fakeTransport records every delivery call for assertions.
type fakeTransport struct {
	sent      []string
	edits     []string
	photos    [][]byte
	captions  []string
	deleted   []int
	nextMsgID int
	sendErr   error
	photoErr  error
}

func (f *fakeTransport) SendText(chatID int64, text string) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.sent = append(f.sent, text)
	f.nextMsgID++
	return f.nextMsgID, nil
}

func (f *fakeTransport) SendPhoto(chatID int64, photo []byte, caption string) error {
	if f.photoErr != nil {
		return f.photoErr
	}
	f.photos = append(f.photos, photo)
	f.captions = append(f.captions, caption)
	return nil
}

func (f *fakeTransport) EditText(chatID int64, messageID int, text string) error {
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeTransport) DeleteMessage(chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

// fakeAnalyzer returns a canned analysis and records whether it ran.
type fakeAnalyzer struct {
	text   string
	called bool
}

func (f *fakeAnalyzer) Analyze(_ model.QuoteSnapshot) string {
	f.called = true
	return f.text
}

// memRecorder keeps events in memory.
type memRecorder struct {
	events []recorder.RequestEvent
}

func (m *memRecorder) RecordRequest(evt *recorder.RequestEvent) error {
	e := *evt
	e.CreatedAt = time.Now()
	m.events = append(m.events, e)
	return nil
}

func (m *memRecorder) RecentRequests(limit int) ([]recorder.RequestEvent, error) {
	if len(m.events) > limit {
		return m.events[:limit], nil
	}
	return m.events, nil
}

func (m *memRecorder) Close() error { return nil }

func okRenderer(_ []model.PricePoint) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func failRenderer(_ []model.PricePoint) ([]byte, error) {
	return nil, errors.New("rasterizer exploded")
}

func newTestHandler() (*Handler, *fakeTransport, *marketdata.MockFetcher, *fakeAnalyzer, *memRecorder) {
	tr := &fakeTransport{}
	fetcher := &marketdata.MockFetcher{}
	an := &fakeAnalyzer{text: "Trading near the middle of its 52-week range."}
	rec := &memRecorder{}
	h := NewHandler(tr, fetcher, an, rec)
	h.Render = okRenderer
	return h, tr, fetcher, an, rec
}

func TestHandleStock_ResolvesAllowListBeforeFetch(t *testing.T) {
	h, _, fetcher, _, _ := newTestHandler()

	h.HandleStock(1, "RELIANCE")

	assert.Equal(t, "RELIANCE.NS", fetcher.LastSymbol)
	assert.True(t, fetcher.LastHint)
}

func TestHandleStock_HappyPathDeliversPhotoAndRemovesPlaceholder(t *testing.T) {
	h, tr, _, _, rec := newTestHandler()

	h.HandleStock(1, "AAPL")

	require.Len(t, tr.sent, 1)
	assert.Contains(t, tr.sent[0], "Processing AAPL")
	require.Len(t, tr.captions, 1)
	assert.Contains(t, tr.captions[0], "AAPL Stock Analysis")
	assert.Contains(t, tr.captions[0], "52-week range")
	assert.Len(t, tr.deleted, 1)
	assert.Empty(t, tr.edits)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "delivered", rec.events[0].Outcome)
}

func TestHandleStock_FetchFailureEditsPlaceholderAndSkipsDownstream(t *testing.T) {
	h, tr, fetcher, an, rec := newTestHandler()
	fetcher.Err = &marketdata.DataError{
		Kind: marketdata.NoData,
		Msg: "no data available for RELIANCE.NS. If this is an Indian stock, " +
			"try adding .NS (for NSE) or .BO (for BSE) to the symbol",
	}
	rendered := false
	h.Render = func(_ []model.PricePoint) ([]byte, error) {
		rendered = true
		return nil, nil
	}

	h.HandleStock(1, "RELIANCE")

	require.Len(t, tr.edits, 1)
	assert.Contains(t, tr.edits[0], "Unable to fetch data for RELIANCE")
	assert.Contains(t, tr.edits[0], ".NS (for NSE) or .BO (for BSE)")
	assert.False(t, an.called, "analysis must not run after a fetch failure")
	assert.False(t, rendered, "rendering must not run after a fetch failure")
	assert.Empty(t, tr.photos)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "failed", rec.events[0].Outcome)
}

func TestHandleStock_RenderFailureFallsBackToText(t *testing.T) {
	h, tr, _, an, rec := newTestHandler()
	h.Render = failRenderer

	h.HandleStock(1, "AAPL")

	assert.Empty(t, tr.photos)
	require.Len(t, tr.edits, 1)
	assert.Contains(t, tr.edits[0], "Chart generation failed, but here's the analysis:")
	assert.Contains(t, tr.edits[0], an.text)
	assert.Empty(t, tr.deleted, "placeholder is reused as the fallback message")

	require.Len(t, rec.events, 1)
	assert.Equal(t, "degraded", rec.events[0].Outcome)
}

func TestHandleStock_AnalysisTimeoutStillDeliversChart(t *testing.T) {
	h, tr, _, an, rec := newTestHandler()
	an.text = "Unable to generate analysis: Request timed out"

	h.HandleStock(1, "AAPL")

	require.Len(t, tr.captions, 1)
	assert.Contains(t, tr.captions[0], "timed out")
	assert.Len(t, tr.photos, 1)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "delivered", rec.events[0].Outcome)
}

func TestHandleStock_PhotoDeliveryFailureEditsPlaceholder(t *testing.T) {
	h, tr, _, _, rec := newTestHandler()
	tr.photoErr = errors.New("caption too long")

	h.HandleStock(1, "AAPL")

	require.Len(t, tr.edits, 1)
	assert.Contains(t, tr.edits[0], "Error processing AAPL")
	assert.Contains(t, tr.edits[0], "Please try again later.")
	assert.Equal(t, "failed", rec.events[0].Outcome)
}

func TestHandleStock_RendererPanicIsContained(t *testing.T) {
	h, tr, _, _, rec := newTestHandler()
	h.Render = func(_ []model.PricePoint) ([]byte, error) {
		panic("renderer blew up")
	}

	assert.NotPanics(t, func() { h.HandleStock(1, "AAPL") })

	require.Len(t, tr.edits, 1)
	assert.Contains(t, tr.edits[0], "Error processing AAPL")
	assert.Contains(t, tr.edits[0], "renderer blew up")
	assert.Contains(t, tr.edits[0], "Please try again later.")
	assert.Empty(t, tr.photos)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "failed", rec.events[0].Outcome)
	assert.Contains(t, rec.events[0].Error, "renderer blew up")
}

type panickingAnalyzer struct{}

func (panickingAnalyzer) Analyze(_ model.QuoteSnapshot) string { panic("nil provider state") }

func TestHandleStock_AnalyzerPanicIsContained(t *testing.T) {
	h, tr, _, _, rec := newTestHandler()
	h.Analyzer = panickingAnalyzer{}

	assert.NotPanics(t, func() { h.HandleStock(1, "TCS") })

	require.Len(t, tr.edits, 1)
	assert.Contains(t, tr.edits[0], "Error processing TCS")
	require.Len(t, rec.events, 1)
	assert.Equal(t, "failed", rec.events[0].Outcome)
	assert.Equal(t, "TCS.NS", rec.events[0].Symbol)
}

func TestHandleStock_PlaceholderSendFailureAborts(t *testing.T) {
	h, tr, fetcher, _, rec := newTestHandler()
	tr.sendErr = errors.New("chat not found")

	h.HandleStock(1, "AAPL")

	assert.Zero(t, fetcher.Calls)
	assert.Empty(t, tr.photos)
	assert.Empty(t, rec.events)
}

func TestHandleMessage_Commands(t *testing.T) {
	h, tr, fetcher, _, _ := newTestHandler()

	h.HandleMessage(1, "/start")
	h.HandleMessage(1, "/help")
	h.HandleMessage(1, "/unknown")

	require.Len(t, tr.sent, 3)
	assert.Contains(t, tr.sent[0], "Welcome to the Stock Analysis Bot")
	assert.Contains(t, tr.sent[1], "Stock Analysis Bot Help")
	assert.Contains(t, tr.sent[2], "Stock Analysis Bot Help")
	assert.Zero(t, fetcher.Calls, "commands never reach the pipeline")
}

func TestHandleMessage_LowercaseTickerIsUppercased(t *testing.T) {
	h, _, fetcher, _, _ := newTestHandler()

	h.HandleMessage(1, "tcs")

	assert.Equal(t, "TCS.NS", fetcher.LastSymbol)
}

func TestHandleMessage_HistoryCommand(t *testing.T) {
	h, tr, _, _, _ := newTestHandler()

	h.HandleMessage(1, "/history")
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "No requests recorded yet.", tr.sent[0])

	h.HandleStock(1, "AAPL")
	tr.sent = nil
	h.HandleMessage(1, "/history")
	require.Len(t, tr.sent, 1)
	assert.Contains(t, tr.sent[0], "AAPL: delivered")
}
