package models

// ErrorMessage is the serialized error half of the envelope
type ErrorMessage struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Status    string `json:"status"`
}

// RequestResponse is the body of every API response
type RequestResponse struct {
	Response     any           `json:"response"`
	ErrorMessage *ErrorMessage `json:"errorMessage"`
}
