// Package stellarforge is a client for the StellarForge star registration
// API.
//
// A Client turns flat registration arguments into the API's nested request
// body, sends it, and maps the response status onto either a Star or an
// *Error whose Kind tells callers what went wrong:
//
//	star, err := client.Register(ctx, "PROV-2025-ALPHA", 5.67, -32.11, "Vera C. Rubin Observatory")
//	switch stellarforge.KindOf(err) {
//	case stellarforge.KindNone:
//		fmt.Println(star.ID)
//	case stellarforge.KindAuthentication:
//		// fix the API key
//	case stellarforge.KindInvalidCoordinates:
//		// fix the input
//	case stellarforge.KindServiceUnavailable:
//		// try again later
//	case stellarforge.KindUnexpected:
//		// report
//	}
//
// The client performs no retries. Service-unavailable errors report
// Retryable() so callers can decide for themselves.
//
// Unless another HTTP client is supplied, requests are answered in process by
// the mockapi package and never leave the host.
package stellarforge
