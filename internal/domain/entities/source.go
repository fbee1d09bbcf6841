package entities

// SourceType is the provenance category of an estimate: who or what created
// it. It drives source badges, filters and the source-mix metric.
type SourceType string

const (
	SourceRepairTech  SourceType = "repair_tech"
	SourceServiceTech SourceType = "service_tech"
	SourceOfficeStaff SourceType = "office_staff"
	SourceEmergency   SourceType = "emergency"
)

// normalizeSourceType folds the legacy aliases seen in stored data into the
// canonical categories.
func normalizeSourceType(raw SourceType) SourceType {
	switch raw {
	case SourceRepairTech, "field":
		return SourceRepairTech
	case SourceServiceTech, "service_repair":
		return SourceServiceTech
	case SourceEmergency, "sos":
		return SourceEmergency
	case SourceOfficeStaff, "manual", "office":
		return SourceOfficeStaff
	}
	return ""
}

// InferSourceType determines the provenance category of an estimate. Pure and
// idempotent; the single source of truth for source classification.
func InferSourceType(e Estimate) SourceType {
	if s := normalizeSourceType(e.SourceType); s != "" {
		return s
	}
	if e.SourceEmergencyID != "" {
		return SourceEmergency
	}
	if e.SourceRepairJobID != "" || e.ServiceRepairCount > 0 {
		return SourceServiceTech
	}
	if e.CreatedByTech.ID != "" && e.CreatedByTech.Name != "" {
		return SourceRepairTech
	}
	return SourceOfficeStaff
}

// SourceMixEntry is one bucket of the source-mix metric.
type SourceMixEntry struct {
	Count      int   `json:"count"`
	TotalValue int64 `json:"total_value"` // minor units
}

// SourceMix aggregates counts and total value by inferred source category.
func SourceMix(estimates []Estimate) map[SourceType]SourceMixEntry {
	mix := map[SourceType]SourceMixEntry{
		SourceRepairTech:  {},
		SourceServiceTech: {},
		SourceOfficeStaff: {},
		SourceEmergency:   {},
	}
	for _, e := range estimates {
		src := InferSourceType(e)
		entry := mix[src]
		entry.Count++
		entry.TotalValue += int64(e.TotalAmount)
		mix[src] = entry
	}
	return mix
}
