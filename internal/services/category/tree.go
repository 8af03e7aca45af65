package category

import (
	"sort"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildForest turns a flat parent-pointer listing into a forest of
// CategoryNodes. A node whose parent is missing from the listing (filtered
// out by audience, or genuinely gone) is promoted to a root instead of
// being dropped, so every input category appears in the output exactly
// once. Siblings at every level are sorted by order, then name.
func BuildForest(flat []models.Category) []*models.CategoryNode {
	byID := make(map[primitive.ObjectID]*models.CategoryNode, len(flat))
	nodes := make([]*models.CategoryNode, 0, len(flat))
	for i := range flat {
		node := &models.CategoryNode{Category: flat[i], Children: []*models.CategoryNode{}}
		byID[flat[i].ID] = node
		nodes = append(nodes, node)
	}

	roots := []*models.CategoryNode{}
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*node.ParentID]
		if !ok || parent == node {
			// orphan: parent excluded by the audience filter or missing
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	// Collators keep internal iterator state, so build one per call
	// rather than sharing across requests.
	sortLevel(roots, collate.New(language.English))
	return roots
}

func sortLevel(nodes []*models.CategoryNode, c *collate.Collator) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return c.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
	for _, node := range nodes {
		sortLevel(node.Children, c)
	}
}
