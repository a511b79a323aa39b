/*
Package validation provides shared construction-time validation helpers.

All helpers return a *errors.ValidationError describing the offending module,
field and value, so that constructors across the library fail fast with a
uniform error shape:

	if err := validation.ValidatePositiveFloat("loop", "frequency", f); err != nil {
		return nil, err
	}
*/
package validation
