package dto

// Res is the JSON body returned for every non-resource answer.
type Res struct {
	Message string `json:"message"`
	// Error carries the error kind, e.g. "NotFoundError".
	Error string `json:"error,omitempty"`
	// Detail carries upstream diagnostics when the platform answered.
	Detail string `json:"detail,omitempty"`
}

// AuthStatusResponse is the body of GET /auth/youtube/tokens.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
}

// OAuthCallbackQuery binds the provider's redirect parameters.
type OAuthCallbackQuery struct {
	Code             string `form:"code"`
	State            string `form:"state"`
	Error            string `form:"error"`
	ErrorDescription string `form:"error_description"`
}
