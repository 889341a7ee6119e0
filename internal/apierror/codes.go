package apierror

// Error type URIs following the urn:moodlens:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:moodlens:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:moodlens:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:moodlens:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:moodlens:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:moodlens:error:internal"

	// TypeInvalidDate indicates a date not in YYYY-MM-DD form (400)
	TypeInvalidDate = "urn:moodlens:error:invalid_date"

	// TypeFutureDate indicates an attempt to log data for a future date (400)
	TypeFutureDate = "urn:moodlens:error:future_date"

	// TypeInvalidRating indicates a mood rating outside the 1-10 scale (400)
	TypeInvalidRating = "urn:moodlens:error:invalid_rating"

	// TypeInvalidSegment indicates an unknown day segment (400)
	TypeInvalidSegment = "urn:moodlens:error:invalid_segment"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:moodlens:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation     = "Validation Error"
	TitleNotFound       = "Resource Not Found"
	TitleConflict       = "Resource Conflict"
	TitleRateLimit      = "Rate Limit Exceeded"
	TitleInternal       = "Internal Server Error"
	TitleInvalidDate    = "Invalid Date Format"
	TitleFutureDate     = "Future Date Not Allowed"
	TitleInvalidRating  = "Invalid Mood Rating"
	TitleInvalidSegment = "Invalid Day Segment"
	TitleBadRequest     = "Bad Request"
)
