package dto

type AnalyticsResponse struct {
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	LikesCount int    `json:"likes_count"`
	Details    string `json:"details"`
}
