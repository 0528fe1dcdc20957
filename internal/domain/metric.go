package domain

import "time"

// MetricRow é a linha de métricas diárias de uma entidade em qualquer nível.
// Apenas contadores brutos são armazenados; taxas derivadas (CTR, CPC, CPM)
// são sempre calculadas na leitura para evitar divergência.
type MetricRow struct {
	EntityID    string    `json:"entity_id"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Reach       int64     `json:"reach"`
	Spend       float64   `json:"spend"`
	Frequency   float64   `json:"frequency"`
	Conversions int64     `json:"conversions"`
}

type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}
