package accept_request

// AcceptRequestRequest HTTP request model
type AcceptRequestRequest struct {
	RequestID int64 `json:"requestId"`
}
