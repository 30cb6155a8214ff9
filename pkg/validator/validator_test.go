package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type catalogPayload struct {
	CategoryID uuid.UUID `validate:"uuid_required"`
	Slug       string    `validate:"required,slug"`
}

func TestUUIDRequired(t *testing.T) {
	errs := ValidateStruct(&catalogPayload{CategoryID: uuid.Nil, Slug: "keyboards"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)

	errs = ValidateStruct(&catalogPayload{CategoryID: uuid.New(), Slug: "keyboards"})
	assert.Empty(t, errs)
}

func TestSlugRule(t *testing.T) {
	id := uuid.New()

	for _, slug := range []string{"keyboards", "keyboards-mice", "k8-pro-2"} {
		errs := ValidateStruct(&catalogPayload{CategoryID: id, Slug: slug})
		assert.Empty(t, errs, "slug %q should be valid", slug)
	}

	for _, slug := range []string{"Keyboards", "keyboards mice", "-keyboards", "keyboards-", "a--b", "ürün"} {
		errs := ValidateStruct(&catalogPayload{CategoryID: id, Slug: slug})
		assert.NotEmpty(t, errs, "slug %q should be rejected", slug)
	}
}
