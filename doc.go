// Package wata provides a Go client SDK for the WATA payment API (H2H).
//
// The SDK covers payment link management, transaction lookup, and
// cryptographic verification of webhook notifications. Requests are
// authenticated with a JWT bearer token, retried with exponential backoff
// on transient failures, and terminal failures are surfaced as a typed
// error taxonomy.
//
// Basic usage:
//
//	client, err := wata.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	link, err := client.Links.Create(ctx, wata.CreateLinkParams{
//	    Amount:   100.50,
//	    Currency: wata.CurrencyRUB,
//	    OrderID:  "ORDER-123",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Pay at:", link.URL)
//
// Webhook notifications must be verified against the exact raw request
// body before being parsed:
//
//	ok, err := client.Webhooks.VerifySignature(ctx, rawBody, r.Header.Get(wata.SignatureHeader))
//	if err != nil || !ok {
//	    // reject the webhook
//	}
package wata
