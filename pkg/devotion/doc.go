// Package devotion fetches daily devotional content from a generation
// backend and enforces its shape.
//
// A Service checks its Gate, sends one request through its Generator and
// turns the response into a Study, a Quiz or a decoded pcm.Buffer:
//
//	svc := devotion.New(devotion.Config{
//	    Generator: client, // *genx.Client with devotion.DefaultRequests()
//	    Gate:      gate,
//	})
//	study, err := svc.DailyStudy(ctx, "Love")
//	switch {
//	case errors.Is(err, devotion.ErrCredentialMissing):
//	    // ask the user to select a credential
//	case errors.Is(err, devotion.ErrSchemaViolation),
//	    errors.Is(err, genx.ErrMalformedResponse),
//	    errors.Is(err, genx.ErrEmptyResponse),
//	    errors.Is(err, genx.ErrTransport):
//	    // offer a retry
//	}
//
// Nothing is retried or substituted: every failure reaches the caller.
package devotion
