package domain

// MetricsSummary agrega as métricas de uma entidade dentro de uma janela.
// Somas são exatas; taxas derivadas são arredondadas para duas casas.
type MetricsSummary struct {
	EntityID       string  `json:"entity_id"`
	Level          string  `json:"level"`
	WindowDays     int     `json:"window_days"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Reach          int64   `json:"reach"`
	Spend          string  `json:"spend"`
	Conversions    int64   `json:"conversions"`
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CPM            float64 `json:"cpm"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgFrequency   float64 `json:"avg_frequency"`
}
