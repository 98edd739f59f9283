package client

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// ValidationMessages flattens a field-validation failure into field→message
// pairs for rendering next to form inputs. Non-validation errors come back
// under the "form" key so callers always have something to show.
func ValidationMessages(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		out := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return map[string]string{"form": richErr.Message}
	}
	return map[string]string{"form": err.Error()}
}
