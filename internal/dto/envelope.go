package dto

import "github.com/gin-gonic/gin"

// OK builds the success envelope. payload keys sit next to success and message.
func OK(message string, payload gin.H) gin.H {
	out := gin.H{"success": true}
	if message != "" {
		out["message"] = message
	}
	for k, v := range payload {
		out[k] = v
	}
	return out
}
