// Package theme holds the dashboard's color palette. The analytics core
// stays presentation-free; colors are attached at the rendering boundary.
package theme

import "acutrace/internal/core"

// Functional colors for transaction flows.
const (
	ColorCredit   = "#10b981"
	ColorDebit    = "#f43f5e"
	ColorTransfer = "#6366f1"
	ColorUPI      = "#a855f7"
)

// Palette maps semantic roles to display colors.
type Palette struct {
	NodeColors     map[core.NodeRole]string
	CategoryColors []string
}

// Default returns the emerald palette the dashboard ships with.
func Default() Palette {
	return Palette{
		NodeColors: map[core.NodeRole]string{
			core.RoleSelf:       "#10b981",
			core.RoleMerchant:   "#3b82f6",
			core.RoleIndividual: "#a855f7",
		},
		CategoryColors: []string{
			"#10b981", "#059669", "#047857", "#065f46",
			"#f59e0b", "#d97706", "#b45309", "#92400e",
			"#ef4444", "#dc2626", "#b91c1c", "#991b1b",
			"#8b5cf6", "#7c3aed", "#6d28d9", "#5b21b6",
			"#3b82f6", "#2563eb", "#1d4ed8", "#1e40af",
		},
	}
}

// NodeColor returns the color for a graph node role, falling back to the
// self color for unknown roles.
func (p Palette) NodeColor(role core.NodeRole) string {
	if c, ok := p.NodeColors[role]; ok {
		return c
	}
	return p.NodeColors[core.RoleSelf]
}

// CategoryColor returns the chart color for the i-th category slice,
// cycling when the breakdown has more slices than the palette.
func (p Palette) CategoryColor(i int) string {
	if len(p.CategoryColors) == 0 {
		return ColorCredit
	}
	return p.CategoryColors[i%len(p.CategoryColors)]
}
