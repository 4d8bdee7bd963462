package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())

	kindErr := NewKind(PreviewFailed, "no player")
	assert.Equal(t, PreviewFailed, KindOf(kindErr))
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))
	assert.Nil(t, WrapKind(nil, ListingFailed, "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestBackendError(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := NewBackendError("list failed", "/folder_file_pro/list", 500, ListingFailed, nil)
		assert.Equal(t, "list failed: /folder_file_pro/list: HTTP 500 Internal Server Error", err.Error())
		assert.Equal(t, 500, err.Status())
		assert.Equal(t, "/folder_file_pro/list", err.Endpoint())
		assert.True(t, IsListingFailed(err))
		assert.False(t, IsResolveFailed(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := NewBackendError("resolve failed", "/folder_file_pro/resolve_index", 0, ResolveFailed, cause)
		assert.Equal(t, "resolve failed: /folder_file_pro/resolve_index: connection refused", err.Error())
		assert.Equal(t, cause, Unwrap(err))
		assert.True(t, IsResolveFailed(err))
		assert.Equal(t, 0, StatusOf(err))
	})

	t.Run("wrapped keeps kind", func(t *testing.T) {
		err := Wrap(NewBackendError("fonts", "/dao/text/fonts", 404, FetchGenericFailure, nil), "refresh fonts")
		assert.True(t, IsFetchFailure(err))
		assert.Equal(t, FetchGenericFailure, KindOf(err))
		assert.Equal(t, 404, StatusOf(err))
	})
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "panel.type_ahead_timeout", InvalidConfig, nil)
	assert.Equal(t, "invalid value: panel.type_ahead_timeout", configErr.Error())
	assert.Equal(t, "panel.type_ahead_timeout", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsConfigNotFound(configErr))

	origErr := fmt.Errorf("file missing")
	notFound := NewConfigError("config not found", "/etc/folderpick.yaml", ConfigNotFound, origErr)
	assert.Equal(t, "config not found: /etc/folderpick.yaml: file missing", notFound.Error())
	assert.True(t, IsConfigNotFound(notFound))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.Equal(t, InvalidConfig, ErrInvalidConfig.Kind())
}

func TestNodeError(t *testing.T) {
	nodeErr := NewNodeError("unknown node type", "Mystery Node", UnknownNodeType, nil)
	assert.Equal(t, "unknown node type: Mystery Node", nodeErr.Error())
	assert.Equal(t, "Mystery Node", nodeErr.NodeType())
	assert.True(t, IsUnknownNodeType(nodeErr))
	assert.True(t, IsUnknownNodeType(Wrap(nodeErr, "create")))
}

func TestStandardErrorsInterop(t *testing.T) {
	stdErr := errors.New("standard error")
	wrapped := WrapKind(stdErr, ExplorerOpenFailed, "open explorer")
	assert.True(t, errors.Is(wrapped, stdErr))
	assert.True(t, IsExplorerOpenFailed(wrapped))
	assert.Equal(t, Unknown, KindOf(stdErr))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "listing_failed", ListingFailed.String())
	assert.Equal(t, "fetch_failed", FetchGenericFailure.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}
