// Package logger wraps zap for the medical alert binaries:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and runtime level changes,
//   - leveled shortcuts that pull the logger out of a context.
//
// The evaluator and the services receive a context and log through it, so a
// caller can scope every line of one evaluation with WithKV.
package logger
