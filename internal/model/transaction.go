package model

type TradeSide string

const (
	Buy  TradeSide = "buy"
	Sell TradeSide = "sell"
)

type Transaction struct {
	ID          int       `json:"id"`
	GameID      int       `json:"game_id"`
	GameName    string    `json:"game_name"`
	Type        TradeSide `json:"transaction_type"`
	Quantity    int       `json:"shares"`
	Price       float64   `json:"price_per_share"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   APITime   `json:"created_at"`
}

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

type TransactionsPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// TradeResult is the backend's buy/sell response. Success is signalled by
// the HTTP status, not by the free-text message.
type TradeResult struct {
	Message     string         `json:"message"`
	UserBalance float64        `json:"user_balance"`
	Transaction *Transaction   `json:"transaction,omitempty"`
	Portfolio   *ServerHolding `json:"portfolio,omitempty"`
}
