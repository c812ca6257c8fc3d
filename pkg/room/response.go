package room

// PayloadIn is a message received from a web client
type PayloadIn struct {
	Action  string `json:"action"`
	Seat    int    `json:"seat"`
	Amount  int    `json:"amount"`
	Post    bool   `json:"post"`
	Message string `json:"message"`
	Context string `json:"context"`
}

// Response is a message sent to a web client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Context string      `json:"context,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK returns an acknowledgment response for the given client context
func OK(ctx string) *Response {
	return &Response{
		Key:     "ok",
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
