package executor

import "github.com/pkg/errors"

func errorIs(err, target error) bool {
	return errors.Cause(err) == target
}
