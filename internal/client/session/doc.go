// Package session owns the console's authentication state.
//
// Store is the observable, process-wide session state: the cached user, the
// bearer token and the authenticated/loading/resolved flags. Manager is its
// only writer and the only component that touches the credential repository.
// It implements login, logout, startup restoration, profile refresh and role
// checks, and it ends sessions on behalf of the request pipeline.
//
// Typical wiring:
//
//	store := session.NewStore()
//	pipe := client.NewPipeline(store, inspector, notifier, log)
//	api, _ := client.NewHTTPClient(url, timeout, pipe, log)
//	mgr := session.NewManager(store, creds, api, inspector, notifier, log)
//	pipe.BindSession(mgr)
//	mgr.Restore(ctx)
package session
