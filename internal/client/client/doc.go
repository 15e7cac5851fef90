// Package client talks to the fraudcheck backend.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the session manager and the
//     record views depend on: identity calls, record CRUD and file upload.
//  2. GRPCClient implements it over gRPC. An interceptor injects the access
//     token and, when the server reports it expired, refreshes the token pair
//     once and retries the call.
//  3. InitDatabase and RunMigrations open the local SQLite session cache and
//     apply its embedded goose migrations.
//
// # Error Handling
//
// gRPC status codes are mapped back to the sentinel errors of package common
// (ErrorNotFound, ErrAccessDenied, ErrorValidation and so on) keeping the
// server message, so callers match with errors.Is and can still print the
// reason. ErrUnavailable covers connectivity failures.
package client
