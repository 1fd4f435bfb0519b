package usecase

import (
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// BuildTree turns flat rows into an ordered forest with aggregated product
// counts. Rows keep their input order among siblings. A row whose parent is
// missing from rows (deleted or inactive) is promoted to a root. Rows caught
// in a parent cycle are unreachable from any root and are left out.
func BuildTree(rows []model.CategoryCounts, l locale.Locale) []*model.CategoryNode {
	nodes := make(map[int64]*model.CategoryNode, len(rows))
	direct := make(map[int64]int, len(rows))
	for i := range rows {
		r := &rows[i]
		nodes[r.ID] = &model.CategoryNode{
			ID:                  r.ID,
			ParentID:            r.ParentID,
			Name:                r.LocalizedName(l),
			Slug:                r.Slug,
			Icon:                r.Icon,
			OrderIndex:          r.OrderIndex,
			CharacteristicCount: r.CharacteristicCount,
			Children:            []*model.CategoryNode{},
		}
		direct[r.ID] = r.DirectProductCount
	}

	children := make(map[int64][]int64, len(rows))
	var roots []int64
	for i := range rows {
		r := &rows[i]
		if r.ParentID != nil && *r.ParentID != r.ID {
			if _, ok := nodes[*r.ParentID]; ok {
				children[*r.ParentID] = append(children[*r.ParentID], r.ID)
				continue
			}
		}
		nodes[r.ID].ParentID = nil
		roots = append(roots, r.ID)
	}

	visited := make(map[int64]bool, len(rows))
	var aggregate func(id int64) int
	aggregate = func(id int64) int {
		if visited[id] {
			return 0
		}
		visited[id] = true

		n := nodes[id]
		total := direct[id]
		for _, childID := range children[id] {
			total += aggregate(childID)
			n.Children = append(n.Children, nodes[childID])
		}
		n.ProductCount = total
		return total
	}

	forest := make([]*model.CategoryNode, 0, len(roots))
	for _, id := range roots {
		aggregate(id)
		forest = append(forest, nodes[id])
	}
	return forest
}
