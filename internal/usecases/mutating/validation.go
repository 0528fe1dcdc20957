package mutating

// Tabela fixa de compatibilidade entre meta de otimização e evento de
// cobrança. Pares fora da tabela são rejeitados antes de qualquer chamada
// ao provedor.
var optimizationBillingCompatibility = map[string][]string{
	"REACH":               {"IMPRESSIONS"},
	"IMPRESSIONS":         {"IMPRESSIONS"},
	"LINK_CLICKS":         {"LINK_CLICKS", "IMPRESSIONS"},
	"LANDING_PAGE_VIEWS":  {"IMPRESSIONS"},
	"POST_ENGAGEMENT":     {"IMPRESSIONS", "POST_ENGAGEMENT"},
	"THRUPLAY":            {"IMPRESSIONS", "THRUPLAY"},
	"LEAD_GENERATION":     {"IMPRESSIONS"},
	"OFFSITE_CONVERSIONS": {"IMPRESSIONS"},
	"APP_INSTALLS":        {"IMPRESSIONS", "APP_INSTALLS"},
}

// Estratégias de lance que exigem bid_amount informado.
var bidStrategiesRequiringCap = map[string]bool{
	"LOWEST_COST_WITH_BID_CAP": true,
	"COST_CAP":                 true,
}

// isValidOptimizationBillingCombination verifica o par contra a tabela fixa.
func isValidOptimizationBillingCombination(goal, event string) bool {
	allowed, ok := optimizationBillingCompatibility[goal]
	if !ok {
		return false
	}

	for _, candidate := range allowed {
		if candidate == event {
			return true
		}
	}

	return false
}

// Limites de upload de mídia por tipo.
const (
	maxImageSizeBytes = 10 << 20  // 10 MiB
	maxVideoSizeBytes = 100 << 20 // 100 MiB
)

var allowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedVideoMIMETypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
}
