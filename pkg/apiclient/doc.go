// Package apiclient is the gateway for every outbound FinWise API call.
//
// A single Client owns the HTTP transport, the base URL, and the persisted
// credential slot. Every request automatically carries the current bearer
// credential as an Authorization header when one is present, and every
// failure is normalized into the closed taxonomy of package apierr before it
// reaches the caller.
//
// When the server rejects a presented credential, the client erases the
// persisted slot and runs the registered auth-expiry hooks before the
// in-flight call returns, so the session is reset no matter which resource
// the call targeted:
//
//	client, _ := apiclient.New("https://api.example.com/api",
//	    apiclient.WithCredentialStore(store),
//	)
//	client.OnAuthExpired(func(ctx context.Context) {
//	    session.Expire()
//	})
//
// Operations map 1:1 onto the REST resources: authentication, current
// identity, user settings, dashboard aggregate, accounts, transactions with
// filterable paginated listing, parties, receipts (binary upload/download),
// analytics queries, audit-log queries, and a liveness probe.
package apiclient
