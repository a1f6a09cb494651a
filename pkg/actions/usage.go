package actions

import (
	"github.com/arthur-debert/scribe/pkg/command"
	"github.com/arthur-debert/scribe/pkg/errors"
)

func atLeast(action string, arguments []command.Value, n int) error {
	if len(arguments) < n {
		return errors.Newf(errors.ErrInvalidUsage, "%s needs at least %d argument(s), got %d", action, n, len(arguments)).
			WithDetail("action", action)
	}
	return nil
}

func exactly(action string, arguments []command.Value, n int) error {
	if len(arguments) != n {
		return errors.Newf(errors.ErrInvalidUsage, "%s needs exactly %d argument(s), got %d", action, n, len(arguments)).
			WithDetail("action", action)
	}
	return nil
}
