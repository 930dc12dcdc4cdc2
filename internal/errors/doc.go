// Package apperrors defines the structured error types the application
// distinguishes between: configuration problems, expression evaluation
// failures and timeouts. Each type carries its underlying cause and
// implements Unwrap, so errors.Is and errors.As see through the
// wrappers, and maps to a stable process exit code.
package apperrors
