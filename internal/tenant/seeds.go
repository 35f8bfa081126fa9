package tenant

import "workspace-service/internal/model"

// Seed describes the name and palette a tenant receives on first
// contact when no record exists yet.
type Seed struct {
	Name   string
	Colors model.ThemeColors
}

// DefaultSeedKey is the fallback entry applied to tenant IDs with no
// dedicated seed.
const DefaultSeedKey = "default"

// DefaultSeeds returns the built-in mapping of known demo tenant IDs to
// preset themes. The directory holds an injected copy; this table is
// never mutated at runtime.
func DefaultSeeds() map[string]Seed {
	return map[string]Seed{
		"t1": {
			Name: "Acme HQ",
			Colors: model.ThemeColors{
				Primary:    "#1f2937",
				Accent:     "#2563eb",
				Background: "#f5f5f4",
				Surface:    "#ffffff",
				Text:       "#0f172a",
				Muted:      "#4b5563",
			},
		},
		"t2": {
			Name: "Northwind Ops",
			Colors: model.ThemeColors{
				Primary:    "#14532d",
				Accent:     "#0ea5e9",
				Background: "#f8fafc",
				Surface:    "#ffffff",
				Text:       "#082f49",
				Muted:      "#64748b",
			},
		},
		"t3": {
			Name: "Globex Labs",
			Colors: model.ThemeColors{
				Primary:    "#1e1b4b",
				Accent:     "#f59e0b",
				Background: "#f9fafb",
				Surface:    "#ffffff",
				Text:       "#111827",
				Muted:      "#6b7280",
			},
		},
		DefaultSeedKey: {
			Name: "Community Tenant",
			Colors: model.ThemeColors{
				Primary:    "#1f2937",
				Accent:     "#2563eb",
				Background: "#f8fafc",
				Surface:    "#ffffff",
				Text:       "#111827",
				Muted:      "#6b7280",
			},
		},
	}
}
