package constants

import "github.com/gin-gonic/gin"

// Standard Response Field Keys
const (
	ResponseFieldOK      = "ok"
	ResponseFieldError   = "error"
	ResponseFieldDetails = "details"
	ResponseFieldReason  = "reason"
)

// BuildOKResponse wraps a payload in the standard success envelope.
// Every endpoint returns a boolean "ok" discriminant.
func BuildOKResponse(payload gin.H) gin.H {
	response := gin.H{ResponseFieldOK: true}
	for k, v := range payload {
		response[k] = v
	}
	return response
}

// BuildErrorResponse builds the standard failure envelope with an error code.
func BuildErrorResponse(code string, details any) gin.H {
	response := gin.H{
		ResponseFieldOK:    false,
		ResponseFieldError: code,
	}
	if details != nil {
		response[ResponseFieldDetails] = details
	}
	return response
}

// BuildReasonResponse builds the redemption-style failure envelope: the
// redeem endpoint reports domain outcomes as {ok:false, reason} at HTTP 200.
func BuildReasonResponse(reason string) gin.H {
	return gin.H{
		ResponseFieldOK:     false,
		ResponseFieldReason: reason,
	}
}
