package chartparse

// NounPhrase is the label NPChunks looks for.
const NounPhrase = "NP"

// NPChunks returns the noun-phrase chunks of t in pre-order.
func NPChunks(t *Tree) []*Tree {
	return Chunks(t, NounPhrase)
}

// Chunks returns every subtree of t labeled label none of whose immediate
// children is also labeled label, in the order Subtrees visits them.
//
// Only immediate children are checked. An NP with an NP grandchild is still
// a chunk, and so is that grandchild.
func Chunks(t *Tree, label string) []*Tree {
	var chunks []*Tree
	for sub := range t.Subtrees() {
		if sub.label == label && !hasChildLabeled(sub, label) {
			chunks = append(chunks, sub)
		}
	}
	return chunks
}

func hasChildLabeled(t *Tree, label string) bool {
	for _, c := range t.children {
		if sub, ok := c.(*Tree); ok && sub.label == label {
			return true
		}
	}
	return false
}
