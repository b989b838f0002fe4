package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/gallery"
	"github.com/dmitrijs2005/forsa-manager/internal/client/moderation"
	"github.com/dmitrijs2005/forsa-manager/internal/client/services"
	"github.com/dmitrijs2005/forsa-manager/internal/client/session"
)

const networkMessage = "Network error. Please check your connection and try again."

// UserMessage turns any error from the core into the text shown to the
// operator.
func UserMessage(err error) string {
	var failure *moderation.Failure
	var apiErr *client.APIError
	var usage usageError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &failure):
		return failure.Message()
	case errors.As(err, &usage):
		return usage.Error()
	case errors.Is(err, errNothingPaged):
		return "Open the users or ads list first."
	case errors.Is(err, errNoAdOpen):
		return "Open an ad first, or name one: approve|reject <n|id>."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, session.ErrNoSession):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable):
		return networkMessage
	case errors.Is(err, moderation.ErrCancelled), errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, moderation.ErrInFlight):
		return "This item is still being updated, please wait."
	case errors.Is(err, moderation.ErrNoIdentifier):
		return "This item has no identifier and cannot be changed. Reload the list."
	case errors.Is(err, collection.ErrNotLoaded):
		return "The list has not been loaded yet."
	case errors.Is(err, collection.ErrPageOutOfRange):
		return "No such page."
	case errors.Is(err, collection.ErrNotFound), errors.Is(err, gallery.ErrNoSuchAsset):
		return "No such item."
	case errors.Is(err, collection.ErrUnknownField):
		return "Search by name or phone."
	case errors.Is(err, collection.ErrSearchUnsupported):
		return "This list cannot be searched."
	case errors.Is(err, gallery.ErrNotAnImage):
		return "Please choose an image file."
	case errors.Is(err, gallery.ErrNotAcknowledged):
		return "This image has not been confirmed by the server yet. Reload the gallery and try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to answer. Please try again."
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Unknown error"
	default:
		return "Something went wrong: " + err.Error()
	}
}

// loginMessage is UserMessage for the login screen.
func loginMessage(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		return "Please enter both phone number and password"
	case errors.Is(err, client.ErrNotAdmin):
		return "You do not have admin access to this application."
	case errors.Is(err, client.ErrUnavailable):
		return networkMessage
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Invalid phone number or password"
	default:
		return "An error occurred. Please try again."
	}
}

// reportMessage is UserMessage with superseded loads kept quiet.
func reportMessage(err error) string {
	if errors.Is(err, collection.ErrStaleResponse) || errors.Is(err, gallery.ErrStaleResponse) {
		return ""
	}
	return UserMessage(err)
}
