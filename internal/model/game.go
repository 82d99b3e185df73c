package model

type Game struct {
	ID              int     `json:"id"`
	SteamID         string  `json:"steam_id"`
	Name            string  `json:"name"`
	NameOriginal    string  `json:"name_original,omitempty"`
	NameZh          string  `json:"name_zh,omitempty"`
	CurrentPrice    float64 `json:"current_price"`
	PositiveReviews int     `json:"positive_reviews"`
	TotalReviews    int     `json:"total_reviews,omitempty"`
	ReviewRate      float64 `json:"review_rate"`
	SalesCount      int     `json:"sales_count"`
	LastUpdated     APITime `json:"last_updated"`
	IconURL         string  `json:"icon_url,omitempty"`
	HeaderImage     string  `json:"header_image,omitempty"`
}

func (g Game) GetID() int {
	return g.ID
}

// CalculatedTotalReviews derives the total from the positive count and the
// review rate when the backend omits total_reviews.
func (g Game) CalculatedTotalReviews() int {
	if g.TotalReviews > 0 {
		return g.TotalReviews
	}
	if g.ReviewRate <= 0 {
		return g.PositiveReviews
	}
	return int(float64(g.PositiveReviews) / g.ReviewRate)
}
