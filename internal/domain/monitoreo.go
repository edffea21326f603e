package domain

// EstadoSistema estado agregado del backend (actuator health).
type EstadoSistema struct {
	App      string `json:"app"`
	Database string `json:"database"`
}

// MetricasSistema métricas básicas de la JVM del backend, ya convertidas a
// unidades presentables.
type MetricasSistema struct {
	MemoriaTotalMB          int64   `json:"memory_total_mb"`
	MemoriaUsadaMB          int64   `json:"memory_used_mb"`
	UptimeLegible           string  `json:"uptime_human"`
	UptimeSegundos          float64 `json:"uptime_seconds"`
	ProcesadoresDisponibles int     `json:"processors_available"`
}
