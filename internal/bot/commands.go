package bot

const welcomeText = "👋 Welcome to the Stock Analysis Bot!\n\n" +
	"Send me any stock symbol:\n" +
	"• For Indian stocks: Add '.NS' for NSE or '.BO' for BSE\n" +
	"  Examples: 'RELIANCE.NS', 'TCS.NS', 'INFY.BO'\n" +
	"• For US stocks: Just the symbol\n" +
	"  Examples: 'AAPL', 'MSFT'\n\n" +
	"Try sending 'RELIANCE.NS' for Reliance Industries NSE stock analysis!"

const helpText = "🤖 Stock Analysis Bot Help:\n\n" +
	"For Indian Stocks (NSE/BSE):\n" +
	"• Add '.NS' for NSE stocks: RELIANCE.NS, TCS.NS\n" +
	"• Add '.BO' for BSE stocks: INFY.BO, SBIN.BO\n\n" +
	"For US Stocks:\n" +
	"• Just type the symbol: AAPL, MSFT\n\n" +
	"Popular Indian Stocks:\n" +
	"• RELIANCE.NS - Reliance Industries\n" +
	"• TCS.NS - Tata Consultancy Services\n" +
	"• HDFCBANK.NS - HDFC Bank\n" +
	"• INFY.NS - Infosys\n\n" +
	"Commands:\n" +
	"/start - Start the bot\n" +
	"/help - Show this help message\n" +
	"/history - Show your recent requests"
