package http

// Fixed failure reasons carried in response bodies.
const (
	ReasonCreateFailed = "Something went wrong"
	ReasonNotFound     = "No such challenge"
)
