package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandError(t *testing.T) {
	cause := errors.New("output exists")
	err := fmt.Errorf("generate: %w", NewCommandError(cause, ExitCodeOutputExists))

	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, ExitCodeOutputExists, cmdErr.ExitCode)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generate: output exists", err.Error())
}
