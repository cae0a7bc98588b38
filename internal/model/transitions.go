package model

// Op names a store operation that may move an item between statuses. The
// legal moves live in one table here instead of being re-derived at every
// call site.
type Op string

const (
	OpAttach    Op = "attachComponent"
	OpDetach    Op = "detachComponent"
	OpRelease   Op = "deleteBuild"
	OpSellItem  Op = "sellItem"
	OpSellBuild Op = "sellBuild"
	OpEditItem  Op = "updateItem"
)

type itemMove struct {
	From ItemStatus
	To   ItemStatus
}

// itemTransitions is the allowed {from, to} set per operation.
var itemTransitions = map[Op][]itemMove{
	OpAttach:    {{ItemAvailable, ItemUsed}},
	OpDetach:    {{ItemUsed, ItemAvailable}},
	OpRelease:   {{ItemUsed, ItemAvailable}},
	OpSellItem:  {{ItemAvailable, ItemSold}},
	OpSellBuild: {{ItemUsed, ItemSold}},
}

// CanTransition reports whether op may move an item from one status to
// another.
func CanTransition(op Op, from, to ItemStatus) bool {
	for _, m := range itemTransitions[op] {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}

// EditNeedsForce reports whether a direct status edit bypasses build or sale
// bookkeeping and therefore requires an explicit confirmation from the
// caller. These are the moves the UI historically guarded with a prompt:
// pulling a component out of "used" without detaching it, or rewriting a
// "sold" item's history.
func EditNeedsForce(from, to ItemStatus) bool {
	if from == to {
		return false
	}
	if from == ItemUsed && to == ItemAvailable {
		return true
	}
	return from == ItemSold
}
