package reject_request

// RejectRequestRequest HTTP request model
type RejectRequestRequest struct {
	RequestID int64 `json:"requestId"`
}
