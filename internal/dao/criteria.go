package dao

import (
	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fieldMap maps camelCase criteria fields onto columns of one entity
type fieldMap struct {
	columns      map[string]string
	idColumns    map[string]bool
	associations map[string]bool
}

var productNoteFields = fieldMap{
	columns: map[string]string{
		"id":               "id",
		"productId":        "product_id",
		"productVersionId": "product_version_id",
		"note":             "note",
		"solved":           "solved",
		"createdAt":        "created_at",
		"updatedAt":        "updated_at",
	},
	idColumns: map[string]bool{
		"id":                 true,
		"product_id":         true,
		"product_version_id": true,
	},
	associations: map[string]bool{
		domain.NoteProductAssociation: true,
	},
}

var productFields = fieldMap{
	columns: map[string]string{
		"id":            "id",
		"versionId":     "version_id",
		"parentId":      "parent_id",
		"productNumber": "product_number",
		"name":          "name",
		"active":        "active",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	},
	idColumns: map[string]bool{
		"id":         true,
		"version_id": true,
		"parent_id":  true,
	},
	associations: map[string]bool{
		domain.ProductNotesAssociation: true,
	},
}

// applyCriteria translates c into where / order / limit clauses on db.
// Unknown fields and associations are rejected.
func (f fieldMap) applyCriteria(db *gorm.DB, c *domain.Criteria) (*gorm.DB, error) {
	if c == nil {
		return db, nil
	}

	for _, a := range c.Associations {
		if !f.associations[a] {
			return nil, errors.Wrap(domain.ErrUnknownAssociation, a)
		}
	}

	if len(c.IDs) > 0 {
		ids, err := parseIDs(c.IDs)
		if err != nil {
			return nil, err
		}
		db = db.Where(clause.IN{Column: clause.Column{Name: "id"}, Values: ids})
	}

	for _, filter := range c.Filters {
		column, ok := f.columns[filter.Field]
		if !ok {
			return nil, errors.Wrap(domain.ErrUnknownField, filter.Field)
		}
		value := filter.Value
		if f.idColumns[column] && value != nil {
			s, ok := value.(string)
			if !ok {
				return nil, errors.Wrapf(domain.ErrInvalidID, "%s must be a string", filter.Field)
			}
			id, err := model.ParseBinaryUUID(s)
			if err != nil {
				return nil, errors.Wrap(domain.ErrInvalidID, s)
			}
			value = id
		}
		db = db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}

	for _, sorting := range c.Sortings {
		column, ok := f.columns[sorting.Field]
		if !ok {
			return nil, errors.Wrap(domain.ErrUnknownField, sorting.Field)
		}
		if sorting.Direction != domain.SortAsc && sorting.Direction != domain.SortDesc {
			return nil, errors.Errorf("invalid sort direction %q", sorting.Direction)
		}
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   sorting.Direction == domain.SortDesc,
		})
	}

	if c.Limit > 0 {
		db = db.Limit(c.Limit)
	}

	return db, nil
}

func parseIDs(ids []string) ([]interface{}, error) {
	out := make([]interface{}, 0, len(ids))
	for _, s := range ids {
		id, err := model.ParseBinaryUUID(s)
		if err != nil {
			return nil, errors.Wrap(domain.ErrInvalidID, s)
		}
		out = append(out, id)
	}
	return out, nil
}
