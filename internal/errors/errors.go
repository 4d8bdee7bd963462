// Package errors provides standardized error handling for folderpick.
// It defines common error kinds, typed errors for backend calls,
// configuration and host nodes, and helpers for creating, wrapping and
// classifying errors consistently across the application.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrUnknownNodeType = NewNodeError("unknown node type", "", UnknownNodeType, nil)
	ErrNoSelection     = New("no card selected")
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Backend error kinds
	ListingFailed
	ResolveFailed
	ExplorerOpenFailed
	FetchGenericFailure
	ThumbnailFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Host error kinds
	UnknownNodeType
	WidgetNotFound
	// Preview error kinds
	PreviewFailed
)

var kindNames = map[ErrorKind]string{
	Unknown:             "unknown",
	ListingFailed:       "listing_failed",
	ResolveFailed:       "resolve_failed",
	ExplorerOpenFailed:  "explorer_open_failed",
	FetchGenericFailure: "fetch_failed",
	ThumbnailFailed:     "thumbnail_failed",
	InvalidConfig:       "invalid_config",
	ConfigNotFound:      "config_not_found",
	UnknownNodeType:     "unknown_node_type",
	WidgetNotFound:      "widget_not_found",
	PreviewFailed:       "preview_failed",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// BackendError represents a failed call to one of the backend endpoints.
// Status is zero when the request never produced a response.
type BackendError struct {
	ApplicationError
	endpoint string
	status   int
}

// NewBackendError creates a new backend error
func NewBackendError(msg string, endpoint string, status int, kind ErrorKind, err error) *BackendError {
	return &BackendError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		endpoint: endpoint,
		status:   status,
	}
}

// Error returns the backend error message
func (e *BackendError) Error() string {
	detail := e.endpoint
	if e.status != 0 {
		detail = fmt.Sprintf("%s: HTTP %d %s", e.endpoint, e.status, http.StatusText(e.status))
	}
	if detail == "" {
		return e.ApplicationError.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, detail, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, detail)
}

// Endpoint returns the endpoint path the call was made to
func (e *BackendError) Endpoint() string {
	return e.endpoint
}

// Status returns the HTTP status code, or 0 on transport failures
func (e *BackendError) Status() int {
	return e.status
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// NodeError represents errors related to host nodes and their widgets
type NodeError struct {
	ApplicationError
	nodeType string
}

// NewNodeError creates a new node error
func NewNodeError(msg string, nodeType string, kind ErrorKind, err error) *NodeError {
	return &NodeError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		nodeType: nodeType,
	}
}

// Error returns the node error message
func (e *NodeError) Error() string {
	if e.nodeType != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.nodeType, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.nodeType)
	}
	return e.ApplicationError.Error()
}

// NodeType returns the node type associated with the error
func (e *NodeError) NodeType() string {
	return e.nodeType
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error of the given kind
func NewKind(kind ErrorKind, msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// WrapKind wraps an existing error and tags it with kind
func WrapKind(err error, kind ErrorKind, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// kinded is satisfied by every error type in this package
type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the outermost classified error in err's chain
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind reports whether any error in err's chain carries kind
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsListingFailed checks if the error is a failed directory listing
func IsListingFailed(err error) bool {
	return IsKind(err, ListingFailed)
}

// IsResolveFailed checks if the error is a failed index resolution
func IsResolveFailed(err error) bool {
	return IsKind(err, ResolveFailed)
}

// IsExplorerOpenFailed checks if the error is a failed explorer request
func IsExplorerOpenFailed(err error) bool {
	return IsKind(err, ExplorerOpenFailed)
}

// IsFetchFailure checks if the error is a failed picker fetch
func IsFetchFailure(err error) bool {
	return IsKind(err, FetchGenericFailure)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsConfigNotFound checks if the error is a missing configuration error
func IsConfigNotFound(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == ConfigNotFound
	}
	return false
}

// IsUnknownNodeType checks if the error names a node type nobody registered
func IsUnknownNodeType(err error) bool {
	var nodeErr *NodeError
	if errors.As(err, &nodeErr) {
		return nodeErr.Kind() == UnknownNodeType
	}
	return false
}

// StatusOf returns the HTTP status carried by a BackendError in err's chain
func StatusOf(err error) int {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Status()
	}
	return 0
}
