package core

import (
	"math"
	"sort"
)

// NodeRole classifies a graph node for color mapping in the rendering
// layer. The engine deliberately emits roles rather than colors so the
// display palette stays a rendering concern.
type NodeRole string

const (
	RoleSelf       NodeRole = "self"
	RoleMerchant   NodeRole = "merchant"
	RoleIndividual NodeRole = "individual"
)

// GraphNode is one positioned node of the party-interaction graph, in the
// fixed 600x600 viewbox the dashboard renders into.
type GraphNode struct {
	ID     string   `json:"id"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Radius float64  `json:"radius"`
	Role   NodeRole `json:"role"`
	Label  string   `json:"label"`
	Weight int      `json:"weight,omitempty"`
}

const (
	graphCenter    = 300.0
	orbitRadius    = 180.0
	selfNodeRadius = 40.0
	minNodeRadius  = 20.0
	maxNodeRadius  = 35.0
	maxSatellites  = 8
	selfNodeID     = "ME"
)

// Layout computes the static radial layout for the party network: one
// central node for the account holder plus up to eight satellites, evenly
// spaced on a fixed orbit. Satellites are the top parties by transaction
// count, ties broken by input order. There is no force simulation and no
// overlap resolution; the layout is recomputed from scratch per call.
func Layout(ledger []PartyLedgerEntry) []GraphNode {
	if len(ledger) == 0 {
		return nil
	}

	top := make([]PartyLedgerEntry, len(ledger))
	copy(top, ledger)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TransactionCount > top[j].TransactionCount
	})
	if len(top) > maxSatellites {
		top = top[:maxSatellites]
	}

	nodes := make([]GraphNode, 0, len(top)+1)
	nodes = append(nodes, GraphNode{
		ID:     selfNodeID,
		X:      graphCenter,
		Y:      graphCenter,
		Radius: selfNodeRadius,
		Role:   RoleSelf,
		Label:  selfNodeID,
	})

	step := 360.0 / float64(len(top))
	for i, party := range top {
		angle := float64(i) * step * math.Pi / 180
		role := RoleIndividual
		if party.EntityType == EntityTypeMerchant {
			role = RoleMerchant
		}
		nodes = append(nodes, GraphNode{
			ID:     party.PartyName,
			X:      graphCenter + math.Cos(angle)*orbitRadius,
			Y:      graphCenter + math.Sin(angle)*orbitRadius,
			Radius: satelliteRadius(party.TransactionCount),
			Role:   role,
			Label:  party.PartyName,
			Weight: party.TransactionCount,
		})
	}
	return nodes
}

// satelliteRadius scales a node linearly with its transaction count,
// clamped to the visual floor and ceiling.
func satelliteRadius(count int) float64 {
	r := float64(count) * 2
	if r < minNodeRadius {
		return minNodeRadius
	}
	if r > maxNodeRadius {
		return maxNodeRadius
	}
	return r
}
