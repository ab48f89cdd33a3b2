package discrete

import "github.com/katalvlaran/factree/core"

// Family bundles sum-product elimination for the tree engines. Swap in
// FamilyMax for most-probable-explanation queries.
var Family = core.Family[*TableFactor, *Conditional]{
	Eliminate:  EliminateSum,
	ToFactor:   (*Conditional).AsTable,
	OrphanStub: orphanStub,
}

// FamilyMax is Family with EliminateMax as the eliminator.
var FamilyMax = core.Family[*TableFactor, *Conditional]{
	Eliminate:  EliminateMax,
	ToFactor:   (*Conditional).AsTable,
	OrphanStub: orphanStub,
}

// orphanStub builds the uniform table over the parents of a detached
// clique's conditional. It multiplies as the identity; incremental
// re-elimination feeds it in so the detached separator stays inside one
// clique scope.
func orphanStub(c *Conditional) *TableFactor {
	scope := make([]DiscreteKey, 0, len(c.keys)-c.nf)
	for _, k := range c.keys[c.nf:] {
		card, _ := c.table.Card(k)
		scope = append(scope, DiscreteKey{Key: k, Card: card})
	}

	return newUniformTable(scope)
}
