package metadomain

import (
	"strconv"
	"strings"
	"time"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha diária retornada pelo endpoint de insights com
// time_increment=1. Os campos numéricos vêm como string da API Graph.
type InsightRow struct {
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	Reach       string   `json:"reach"`
	Spend       string   `json:"spend"`
	Frequency   string   `json:"frequency"`
	Actions     []Action `json:"actions"`
}

// conversionActionTypes são os tipos de ação contabilizados como conversão.
var conversionActionTypes = []string{
	"offsite_conversion",
	"onsite_conversion",
	"lead",
	"purchase",
}

// Conversions soma as ações de conversão da linha.
func (r *InsightRow) Conversions() int64 {
	var total int64
	for _, action := range r.Actions {
		for _, prefix := range conversionActionTypes {
			if action.ActionType == prefix || strings.HasPrefix(action.ActionType, prefix+".") {
				if v, err := strconv.ParseInt(action.Value, 10, 64); err == nil {
					total += v
				}
				break
			}
		}
	}
	return total
}

func (r *InsightRow) Date() (time.Time, error) {
	return time.Parse(time.DateOnly, r.DateStart)
}

func (r *InsightRow) ImpressionsInt() int64 { return parseInt(r.Impressions) }
func (r *InsightRow) ClicksInt() int64      { return parseInt(r.Clicks) }
func (r *InsightRow) ReachInt() int64       { return parseInt(r.Reach) }

func (r *InsightRow) SpendFloat() float64     { return parseFloat(r.Spend) }
func (r *InsightRow) FrequencyFloat() float64 { return parseFloat(r.Frequency) }

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
