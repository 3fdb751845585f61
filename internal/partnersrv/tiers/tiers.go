// Package tiers holds the static partnership tier comparison table. The
// content is fixed marketing data, served read-only.
package tiers

import "github.com/productfruits/partnerhub-internal/pkg/types"

// Row is one feature row of the comparison table, with one value per tier.
type Row struct {
	Feature string                `json:"feature"`
	Values  map[types.Tier]string `json:"values"`
}

// Table is the comparison table: the tier columns in ascending order plus the
// feature rows.
type Table struct {
	Tiers []types.Tier `json:"tiers"`
	Rows  []Row        `json:"rows"`
}

var comparison = Table{
	Tiers: types.Tiers(),
	Rows: []Row{
		{
			Feature: "Products",
			Values: map[types.Tier]string{
				types.TierCore:     "Product without AI Studio",
				types.TierPremium:  "Product without AI Studio",
				types.TierPlatinum: "Product including AI Studio",
			},
		},
		{
			Feature: "Education sessions",
			Values: map[types.Tier]string{
				types.TierCore:     "Video (6 hours)",
				types.TierPremium:  "Live (7 hours)",
				types.TierPlatinum: "Live (10 hours)",
			},
		},
		{
			Feature: "Support",
			Values: map[types.Tier]string{
				types.TierCore:     "Standard",
				types.TierPremium:  "Priority",
				types.TierPlatinum: "Slack #channel",
			},
		},
		{
			Feature: "Product meeting",
			Values: map[types.Tier]string{
				types.TierCore:     "2 hours / 6 months",
				types.TierPremium:  "2 hours / 3 months",
				types.TierPlatinum: "1 hour / month",
			},
		},
		{
			Feature: "ARR KPI in total (12 months)",
			Values: map[types.Tier]string{
				types.TierCore:     "$800",
				types.TierPremium:  "$1500",
				types.TierPlatinum: "$2000",
			},
		},
		{
			Feature: "Certificate validity",
			Values: map[types.Tier]string{
				types.TierCore:     "12 months",
				types.TierPremium:  "12 months",
				types.TierPlatinum: "12 months",
			},
		},
		{
			Feature: "Certification fee",
			Values: map[types.Tier]string{
				types.TierCore:     "-",
				types.TierPremium:  "$500",
				types.TierPlatinum: "$1000",
			},
		},
	},
}

// Comparison returns the tier comparison table. The result shares no state
// with the package; callers may modify it.
func Comparison() Table {
	rows := make([]Row, len(comparison.Rows))
	for i, r := range comparison.Rows {
		values := make(map[types.Tier]string, len(r.Values))
		for k, v := range r.Values {
			values[k] = v
		}
		rows[i] = Row{Feature: r.Feature, Values: values}
	}
	return Table{
		Tiers: types.Tiers(),
		Rows:  rows,
	}
}
