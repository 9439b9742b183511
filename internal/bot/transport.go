package bot

// Transport is the chat delivery surface the request pipeline talks to. The
// Telegram implementation owns tokens, connections and polling; the pipeline
// only ever calls these four operations.
type Transport interface {
	SendText(chatID int64, text string) (messageID int, err error)
	SendPhoto(chatID int64, photo []byte, caption string) error
	EditText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
}
