// Package http implements the HTTP handlers of the feedback reporter.
// Handlers stay thin: they parse and validate requests, delegate to the
// services package and translate results into JSON responses.
//
// # Routes
//
//	POST   /api/sessions                              create a session
//	GET    /api/sessions/{sessionID}                  describe a session
//	DELETE /api/sessions/{sessionID}                  clear a session
//	POST   /api/sessions/{sessionID}/analyze          multipart "file" (+ "format")
//	POST   /api/sessions/{sessionID}/generate         JSON GenerateRequest
//	GET    /api/sessions/{sessionID}/downloads        list buffers
//	GET    /api/sessions/{sessionID}/downloads/{kind} stream "report" or "spreadsheet"
//	GET    /api/health                                health summary
//	GET    /metrics                                   Prometheus scrape
//
// # Error Handling
//
// Every failure goes through errors.ErrorHandler and is answered with RFC 7807
// problem details:
//
//	{
//	    "type": "/errors/generate/invalid-event-date",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Invalid date format, use DD-MM-YYYY",
//	    "instance": "/api/sessions/4f1c.../generate"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a chi router, with testify mocks
// standing in for the pipeline services.
package http
