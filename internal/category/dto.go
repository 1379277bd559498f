package category

import (
	errors "github.com/frahmantamala/finance-dashboard/internal"
	"github.com/frahmantamala/finance-dashboard/internal/core/common/validation"
	categoryDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/category"
)

// CategoryDTO is the request payload for creating and replacing categories.
type CategoryDTO struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

func (dto CategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required()
	v.Field("context", dto.Context).
		Required().
		OneOf(errors.ErrCodeInvalidContext,
			categoryDatamodel.ContextBusiness,
			categoryDatamodel.ContextPersonal,
			categoryDatamodel.ContextBoth)
	return v.Validate()
}
