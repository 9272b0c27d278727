// Package farfetch provides a thin convenience layer over an injectable
// HTTP transport:
//
//   - Deterministic option merging across client defaults, a per-request
//     dynamic options provider and per-call overrides (leaf-key precedence)
//   - Request-body encoding (JSON, URL-encoded forms, ordered multipart
//     file uploads) driven by method and content type
//   - Eager response materialization (JSON / text) behind an idempotent
//     envelope
//   - A uniform error pipeline: typed errors, a templated user-facing
//     message and an optional global error handler
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Configuration immutable after construction; safe concurrent use of a
//     single *Client instance
//   - Transport concerns (pooling, retries, caching) stay in the injected
//     transport; the library never performs a second attempt
//
// Typical usage:
//
//	client := farfetch.New(
//	    farfetch.WithBaseURL("https://api.example.com"),
//	    farfetch.WithDynamicOptions(func(ctx context.Context) (farfetch.Options, error) {
//	        return farfetch.Options{Headers: map[string]string{"Authorization": token()}}, nil
//	    }),
//	    farfetch.WithErrorHandler(notifyUser),
//	)
//	resp, err := client.Get(ctx, "/people", &farfetch.Request{ErrorMsgNoun: "people"})
//
// A call that supplies neither ErrorMsg nor ErrorMsgNoun opts out of the
// global error handler and deals with the returned *RequestError itself.
package farfetch
