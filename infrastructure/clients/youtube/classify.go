package youtube

import (
	"errors"
	"net/http"

	"youtube-manager/domain/apperror"

	"google.golang.org/api/googleapi"
)

// Classify maps a failed YouTube call into an *apperror.Error. Rejected
// credentials (401/403) become AuthError so callers know to re-authenticate;
// everything else becomes UpstreamError with the upstream detail attached.
// Errors that are already classified pass through.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		detail := apiErr.Body
		if detail == "" {
			detail = apiErr.Message
		}
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &apperror.Error{
				Kind:    apperror.KindAuth,
				Op:      op,
				Message: "YouTube rejected the credentials, re-authenticate via /auth/youtube",
				Status:  apiErr.Code,
				Detail:  detail,
				Err:     err,
			}
		default:
			return &apperror.Error{
				Kind:    apperror.KindUpstream,
				Op:      op,
				Message: apiErr.Message,
				Status:  apiErr.Code,
				Detail:  detail,
				Err:     err,
			}
		}
	}

	return &apperror.Error{
		Kind:    apperror.KindUpstream,
		Op:      op,
		Message: "request to YouTube failed",
		Detail:  err.Error(),
		Err:     err,
	}
}
