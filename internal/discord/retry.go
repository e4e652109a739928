package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/pkg/retrylimit"
)

// classifyREST retries on 429 and 5xx from Discord. Anything else, including
// errors without an HTTP response, is returned as is.
func classifyREST(err error) retrylimit.Outcome {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return retrylimit.Fatal
	}
	switch code := restErr.Response.StatusCode; {
	case code == http.StatusTooManyRequests:
		return retrylimit.Throttled
	case code >= 500:
		return retrylimit.Retry
	}
	return retrylimit.Fatal
}

// statusOf returns the HTTP status of a discordgo REST error, or 0.
func statusOf(err error) int {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode
	}
	return 0
}
