package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMalformedOptionMessage(t *testing.T) {
	err := &ErrMalformedOption{Key: "log_level", Reason: "unknown level \"loud\""}
	assert.Equal(t, `option error: log_level: unknown level "loud"`, err.Error())
}

func TestErrMalformedOptionUnwraps(t *testing.T) {
	underlying := errors.New(`unknown level "loud"`)
	err := &ErrMalformedOption{Key: "log_level", Reason: underlying.Error(), Err: underlying}
	assert.True(t, errors.Is(err, underlying))
}

func TestErrUnknownOptionMessage(t *testing.T) {
	err := &ErrUnknownOption{Key: "z"}
	assert.Equal(t, `option error: unrecognized option "z"`, err.Error())
}

func TestErrUnknownOptionUnwraps(t *testing.T) {
	underlying := errors.New("no such key")
	err := &ErrUnknownOption{Key: "z", Err: underlying}
	assert.True(t, errors.Is(err, underlying))
}
