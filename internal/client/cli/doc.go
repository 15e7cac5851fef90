// Package cli provides the interactive fraudcheck command-line client.
//
// It wires configuration, the local session cache, the API client, the
// session manager and the record views into a REPL. On start the previous
// session is restored when possible; otherwise the user registers or logs in.
//
// Commands:
//   - register, login, logout, whoami
//   - list, search <term> (no term clears the search)
//   - add, edit <id>, show <id>, download <id> (answer "-" to clear an
//     optional field; a failed save can be retried with the same values)
//   - help, exit
//
// Run blocks until the user exits or stdin is closed.
package cli
