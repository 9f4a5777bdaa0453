// Package api provides the REST API for comparing counter listings.
//
// The API exposes the same comparison the command line tool performs:
//   - POST /api/v1/diff compares two listings supplied by the client
//   - POST /api/v1/parse splits one listing into its chains
//   - POST /api/v1/sample captures the local table twice and compares it
//   - GET /api/v1/health reports the configured source
//
// Access is restricted to loopback and private networks.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "error_code",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
