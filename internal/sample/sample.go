// Package sample holds the fixed fallback data shown when the backend is
// unreachable, mirroring its seed dataset.
package sample

import (
	"time"

	"github.com/gamestock/gamestock-client/internal/model"
)

func Games() []model.Game {
	now := model.NewAPITime(time.Now())
	return []model.Game{
		{ID: 1, SteamID: "730", Name: "Counter-Strike 2", NameZh: "反恐精英 2", CurrentPrice: 168.05, PositiveReviews: 400000, TotalReviews: 50000000, ReviewRate: 0.8, SalesCount: 50000000, LastUpdated: now},
		{ID: 2, SteamID: "570", Name: "Dota 2", NameZh: "刀塔 2", CurrentPrice: 196.14, PositiveReviews: 1800000, TotalReviews: 2200000, ReviewRate: 0.8182, SalesCount: 100000000, LastUpdated: now},
		{ID: 3, SteamID: "2358720", Name: "Black Myth: Wukong", NameZh: "黑神话：悟空", CurrentPrice: 195.67, PositiveReviews: 814142, TotalReviews: 20000000, ReviewRate: 0.9654, SalesCount: 20000000, LastUpdated: now},
		{ID: 4, SteamID: "394360", Name: "Hearts of Iron IV", NameZh: "钢铁雄心 4", CurrentPrice: 71.50, PositiveReviews: 180000, TotalReviews: 250000, ReviewRate: 0.72, SalesCount: 3000000, LastUpdated: now},
		{ID: 5, SteamID: "578080", Name: "PUBG: BATTLEGROUNDS", NameZh: "绝地求生", CurrentPrice: 71.50, PositiveReviews: 850000, TotalReviews: 1500000, ReviewRate: 0.567, SalesCount: 75000000, LastUpdated: now},
		{ID: 6, SteamID: "105600", Name: "Terraria", NameZh: "泰拉瑞亚", CurrentPrice: 197.73, PositiveReviews: 814142, TotalReviews: 843000, ReviewRate: 0.9654, SalesCount: 20000000, LastUpdated: now},
		{ID: 7, SteamID: "1091500", Name: "Cyberpunk 2077", NameZh: "赛博朋克 2077", CurrentPrice: 171.76, PositiveReviews: 380000, TotalReviews: 450000, ReviewRate: 0.8444, SalesCount: 13000000, LastUpdated: now},
	}
}

func Portfolio() model.Portfolio {
	return model.Portfolio{
		TotalValue:    15430.50,
		CashBalance:   5430.50,
		StockValue:    10000.00,
		TotalGainLoss: 1430.50,
		Holdings: []model.Holding{
			{ID: 1, GameID: 1, GameName: "Counter-Strike 2", Quantity: 30, AverageCost: 150.00, CurrentPrice: 168.05, TotalValue: 5041.50, GainLoss: 541.50, GainLossPercentage: 12.04},
			{ID: 2, GameID: 3, GameName: "Black Myth: Wukong", Quantity: 25, AverageCost: 180.00, CurrentPrice: 198.45, TotalValue: 4961.25, GainLoss: 461.25, GainLossPercentage: 10.25},
		},
	}
}

func Transactions() []model.Transaction {
	now := time.Now()
	return []model.Transaction{
		{ID: 1, GameID: 1, GameName: "Counter-Strike 2", Type: model.Buy, Quantity: 10, Price: 150.00, TotalAmount: 1500.00, Timestamp: model.NewAPITime(now.AddDate(0, 0, -7))},
		{ID: 2, GameID: 3, GameName: "Black Myth: Wukong", Type: model.Buy, Quantity: 15, Price: 180.00, TotalAmount: 2700.00, Timestamp: model.NewAPITime(now.AddDate(0, 0, -5))},
		{ID: 3, GameID: 5, GameName: "PUBG: BATTLEGROUNDS", Type: model.Sell, Quantity: 5, Price: 220.00, TotalAmount: 1100.00, Timestamp: model.NewAPITime(now.AddDate(0, 0, -3))},
		{ID: 4, GameID: 1, GameName: "Counter-Strike 2", Type: model.Buy, Quantity: 20, Price: 158.50, TotalAmount: 3170.00, Timestamp: model.NewAPITime(now.AddDate(0, 0, -1))},
	}
}
