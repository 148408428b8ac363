package dto

// AlertasLotes resumen de alertas de vencimiento de lotes.
type AlertasLotes struct {
	TotalAlertas         int `json:"total_alertas"`
	LotesVencidos        int `json:"lotes_vencidos"`
	LotesProximosAVencer int `json:"lotes_proximos_a_vencer"`
}
