package kpi

import (
	"slices"
	"strconv"
)

// Table is a flattened per-asset breakdown, ready for a spreadsheet writer
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

var (
	orderAssetHeader = []string{
		"Activo", "Nombre", "Criticidad", "Órdenes", "Completadas", "Pendientes", "Espera de material",
		"% Completadas", "% Pendientes", "% Espera de material",
	}
	reliabilityAssetHeader = []string{
		"Activo", "Nombre", "Criticidad", "Órdenes", "Incidencias", "Horas operación", "Horas parada",
		"MTBF (h)", "MTTR (h)", "Disponibilidad %", "Confiabilidad %",
	}
)

// OrderAssetTable flattens the asset breakdown of rep
func OrderAssetTable(rep OrderReport) Table {
	t := Table{Header: slices.Clone(orderAssetHeader), Rows: make([][]string, 0, len(rep.Assets))}
	for _, a := range rep.Assets {
		t.Rows = append(t.Rows, []string{
			itoa64(a.AssetID), a.AssetName, criticality(a.Critical),
			strconv.Itoa(a.Total), strconv.Itoa(a.Completed), strconv.Itoa(a.Pending), strconv.Itoa(a.AwaitingMaterial),
			num(a.PercentCompleted), num(a.PercentPending), num(a.PercentAwaitingMaterial),
		})
	}
	return t
}

// ReliabilityAssetTable flattens the per-asset totals of rep
func ReliabilityAssetTable(rep ReliabilityReport) Table {
	t := Table{Header: slices.Clone(reliabilityAssetHeader), Rows: make([][]string, 0, len(rep.Assets))}
	for _, a := range rep.Assets {
		m := a.Totals
		t.Rows = append(t.Rows, []string{
			itoa64(a.AssetID), a.AssetName, criticality(a.Critical),
			strconv.Itoa(m.Orders), strconv.Itoa(m.Incidents), num(m.OperatingHours), num(m.DowntimeHours),
			num(m.MTBF), num(m.MTTR), num(m.Availability), num(m.Reliability),
		})
	}
	return t
}

func criticality(critical bool) string {
	if critical {
		return "Crítico"
	}
	return "No crítico"
}

func num(v float64) string  { return strconv.FormatFloat(v, 'f', 2, 64) }
func itoa64(v int64) string { return strconv.FormatInt(v, 10) }
