package client

import "github.com/go-playground/validator/v10"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(clientStructLevel, ClientV1{})
	return v
}

// Validate checks the semantic constraints that structural parsing leaves
// alone: non-negative sizes, well-formed URLs, plausible hashes, and
// agreement between the assets id and the asset index id. A descriptor can
// parse cleanly and still fail here.
func (c *ClientV1) Validate() error {
	return validate.Struct(c)
}

func clientStructLevel(sl validator.StructLevel) {
	c := sl.Current().Interface().(ClientV1)
	if c.Assets != c.AssetIndex.ID {
		sl.ReportError(c.Assets, "Assets", "Assets", "assetindexmatch", c.AssetIndex.ID)
	}
}
