package partners

import (
	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db/models"
)

// Company is a tree node: a company record with its people nested under it.
// Nesting is re-derived from company_id on every load; the foreign key is the
// join, not an object reference.
type Company struct {
	models.Company
	People []models.Person `json:"people"`
}

func (c *Company) clone() *Company {
	cc := &Company{
		Company: c.Company,
		People:  make([]models.Person, len(c.People)),
	}
	copy(cc.People, c.People)
	if c.CertificateIssuedAt != nil {
		ts := *c.CertificateIssuedAt
		cc.CertificateIssuedAt = &ts
	}
	for i := range cc.People {
		if cc.People[i].CertificateIssuedAt != nil {
			ts := *cc.People[i].CertificateIssuedAt
			cc.People[i].CertificateIssuedAt = &ts
		}
	}
	return cc
}

// buildTree nests people under their owning companies. People referencing a
// company that is not in the list are orphaned and dropped from the tree.
// Input ordering (creation-descending) is preserved for both levels.
func buildTree(companies []*models.Company, people []*models.Person) []*Company {
	tree := make([]*Company, 0, len(companies))
	byID := make(map[uuid.UUID]*Company, len(companies))
	for _, c := range companies {
		node := &Company{
			Company: *c,
			People:  []models.Person{},
		}
		tree = append(tree, node)
		byID[c.ID] = node
	}
	for _, p := range people {
		node, ok := byID[p.CompanyID]
		if !ok {
			// orphaned person, not displayed
			continue
		}
		node.People = append(node.People, *p)
	}
	return tree
}
