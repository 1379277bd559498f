package category

import (
	"errors"
	"time"

	categoryDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/category"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("category name already exists")
)

// DefaultCategories is the fixed list installed by the seed operation.
// Seeding upserts by name, so repeated calls are safe.
var DefaultCategories = []Category{
	{Name: "Infraestrutura", Context: categoryDatamodel.ContextBusiness},
	{Name: "Impostos", Context: categoryDatamodel.ContextBusiness},
	{Name: "Serviços", Context: categoryDatamodel.ContextBusiness},
	{Name: "Marketing", Context: categoryDatamodel.ContextBusiness},
	{Name: "Desenvolvimento", Context: categoryDatamodel.ContextBusiness},
	{Name: "Consultoria", Context: categoryDatamodel.ContextBusiness},
	{Name: "Equipamentos", Context: categoryDatamodel.ContextBusiness},
	{Name: "Software", Context: categoryDatamodel.ContextBusiness},
	{Name: "Nota Fiscal", Context: categoryDatamodel.ContextBusiness},
	{Name: "DAS", Context: categoryDatamodel.ContextBusiness},
	{Name: "Supermercado", Context: categoryDatamodel.ContextPersonal},
	{Name: "Lazer", Context: categoryDatamodel.ContextPersonal},
	{Name: "Transporte", Context: categoryDatamodel.ContextPersonal},
	{Name: "Saúde", Context: categoryDatamodel.ContextPersonal},
	{Name: "Educação", Context: categoryDatamodel.ContextPersonal},
	{Name: "Moradia", Context: categoryDatamodel.ContextPersonal},
	{Name: "Alimentação", Context: categoryDatamodel.ContextPersonal},
	{Name: "Vestuário", Context: categoryDatamodel.ContextPersonal},
	{Name: "Pro-labore", Context: categoryDatamodel.ContextPersonal},
	{Name: "Dividendos", Context: categoryDatamodel.ContextPersonal},
	{Name: "Outros", Context: categoryDatamodel.ContextBoth},
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:        c.ID,
		Name:      c.Name,
		Context:   c.Context,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		Name:      c.Name,
		Context:   c.Context,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(rows))
	for i, c := range rows {
		result[i] = FromDataModel(c)
	}
	return result
}
