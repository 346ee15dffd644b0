package request

// SendMessageRequest is the JSON body of POST /messages.
type SendMessageRequest struct {
	// To is the recipient phone number, e.g. "+4916518375921".
	To string `json:"to"`
	// Text is the SMS body. It is forwarded unchanged and may be empty.
	Text string `json:"text"`
}
