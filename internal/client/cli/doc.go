// Package cli provides the interactive coupon admin console.
//
// It wires configuration, the SQLite credential store, the REST client with
// its request pipeline, the session manager and the resource services, then
// runs a line-oriented REPL on top of them. On start the persisted session
// is restored and a background watcher ends it once the token expires.
//
// Commands:
//   - login / logout / whoami / refresh
//   - access [role]: print the access guard decision
//   - list, show, count over requests, coupons, categories, users and departments
//
// Browsing a resource goes through the access guard: requests, coupons and
// categories need the manager role, users and departments need admin.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
