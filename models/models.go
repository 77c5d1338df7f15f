package models

// Category is the binary classification of a drawn number.
type Category string

const (
	CategoryHigh Category = "High"
	CategoryLow  Category = "Low"
	// CategorySkip is emitted instead of a bet when the engine refuses to
	// predict (dragon-risk zone).
	CategorySkip Category = "SKIP"
)

// Opposite returns the other side of a binary category. SKIP has no
// opposite and is returned unchanged.
func (c Category) Opposite() Category {
	switch c {
	case CategoryHigh:
		return CategoryLow
	case CategoryLow:
		return CategoryHigh
	}
	return c
}

// Result is the graded outcome of a prediction.
type Result string

const (
	ResultPending Result = "Pending"
	ResultWin     Result = "Win"
	ResultLose    Result = "Lose"
	ResultJackpot Result = "Jackpot"
)

// Observation is one recorded round of the feed. Immutable once stored.
type Observation struct {
	Period   string   `json:"period"`
	Number   int      `json:"num"`
	Category Category `json:"category"`
}

// Prediction is one forward-looking call for the period following the
// round it was computed from. Number is -1 for SKIP predictions.
type Prediction struct {
	Period     string    `json:"period"`
	Category   Category  `json:"category"`
	Number     int       `json:"num"`
	Confidence int       `json:"confidence"`
	Rationale  Rationale `json:"rationale"`
	Bias       Bias      `json:"bias"`
	Result     Result    `json:"result"`
}

// Draft is the engine's raw output, before it is bound to a period and
// stored as a Prediction.
type Draft struct {
	Category   Category
	Number     int
	Confidence int
	Rationale  Rationale
	Bias       Bias
}

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	FeedURL          string `env:"FEED_URL" envDefault:"https://wingo-unified-api.gt.tc/api/wingo.php?type=1min"`
	HistoryFile      string `env:"HISTORY_FILE" envDefault:"history.json"`
	CheckInterval    int    `env:"CHECK_INTERVAL" envDefault:"60"` // seconds
	Port             int    `env:"PORT" envDefault:"5000"`
	RequestTimeout   int    `env:"REQUEST_TIMEOUT" envDefault:"10"` // seconds
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	EnableBacktest   bool   `env:"ENABLE_BACKTEST" envDefault:"false"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:"-"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

// WinGoRound is the latest-round payload of the feed API.
type WinGoRound struct {
	IssueNumber string `json:"issueNumber"`
	Number      int    `json:"number"`
}

// WinGoEntry wraps a round the way the unified API nests it.
type WinGoEntry struct {
	Content WinGoRound `json:"content"`
}

// WinGoResponse is the feed's top-level payload: newest round first.
type WinGoResponse []WinGoEntry
