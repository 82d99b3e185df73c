package model

type Holding struct {
	ID                 int     `json:"id"`
	GameID             int     `json:"game_id"`
	GameName           string  `json:"game_name"`
	Quantity           int     `json:"quantity"`
	AverageCost        float64 `json:"average_cost"`
	CurrentPrice       float64 `json:"current_price"`
	TotalValue         float64 `json:"total_value"`
	GainLoss           float64 `json:"gain_loss"`
	GainLossPercentage float64 `json:"gain_loss_percentage"`
}

type Portfolio struct {
	TotalValue    float64   `json:"total_value"`
	CashBalance   float64   `json:"cash_balance"`
	StockValue    float64   `json:"stock_value"`
	TotalGainLoss float64   `json:"total_gain_loss"`
	Holdings      []Holding `json:"holdings"`
}

// ServerHolding is the wire shape of one position as the backend returns it.
type ServerHolding struct {
	ID                int     `json:"id"`
	GameID            int     `json:"game_id"`
	GameName          string  `json:"game_name"`
	GameSteamID       string  `json:"game_steam_id"`
	Shares            int     `json:"shares"`
	AvgBuyPrice       float64 `json:"avg_buy_price"`
	CurrentPrice      float64 `json:"current_price"`
	TotalValue        float64 `json:"total_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
}

func (h ServerHolding) ToHolding() Holding {
	return Holding{
		ID:                 h.ID,
		GameID:             h.GameID,
		GameName:           h.GameName,
		Quantity:           h.Shares,
		AverageCost:        h.AvgBuyPrice,
		CurrentPrice:       h.CurrentPrice,
		TotalValue:         h.TotalValue,
		GainLoss:           h.ProfitLoss,
		GainLossPercentage: h.ProfitLossPercent,
	}
}

type PortfolioSummary struct {
	TotalStocks            int     `json:"total_stocks"`
	TotalValue             float64 `json:"total_value"`
	TotalCost              float64 `json:"total_cost"`
	TotalProfitLoss        float64 `json:"total_profit_loss"`
	TotalProfitLossPercent float64 `json:"total_profit_loss_percent"`
	CashBalance            float64 `json:"cash_balance"`
	TotalAssets            float64 `json:"total_assets"`
}

type PortfolioResponse struct {
	Success    bool             `json:"success"`
	Portfolios []ServerHolding  `json:"portfolios"`
	Summary    PortfolioSummary `json:"summary"`
}

// ToPortfolio maps the backend envelope into the client shape. The summary's
// total_value covers stocks only; total_assets includes cash.
func (r PortfolioResponse) ToPortfolio() Portfolio {
	holdings := make([]Holding, 0, len(r.Portfolios))
	for _, h := range r.Portfolios {
		holdings = append(holdings, h.ToHolding())
	}

	return Portfolio{
		TotalValue:    r.Summary.TotalAssets,
		CashBalance:   r.Summary.CashBalance,
		StockValue:    r.Summary.TotalValue,
		TotalGainLoss: r.Summary.TotalProfitLoss,
		Holdings:      holdings,
	}
}
