package webkit

import (
	"strings"

	"github.com/bnema/embedview/internal/domain/entity"
)

// WebKit error codes, from the network and policy error domains.
const (
	networkErrorFailed           = 399
	networkErrorTransport        = 300
	networkErrorUnknownProtocol  = 301
	networkErrorCancelled        = 302
	networkErrorFileDoesNotExist = 303

	policyErrorCannotShowMimeType = 100
	policyErrorCannotShowURI      = 101
	policyErrorInterrupted        = 102
	policyErrorRestrictedPort     = 103
)

const cancelledMessage = "Load request cancelled"

// classifyLoadFailure maps a load-failed error onto the navigation taxonomy.
func classifyLoadFailure(code int, message string) entity.NavigationErrorKind {
	if message == cancelledMessage || strings.Contains(strings.ToLower(message), "cancelled") {
		return entity.NavigationCancelled
	}
	switch code {
	case networkErrorCancelled, policyErrorInterrupted:
		return entity.NavigationCancelled
	case networkErrorUnknownProtocol, networkErrorFileDoesNotExist,
		policyErrorCannotShowMimeType, policyErrorCannotShowURI, policyErrorRestrictedPort:
		return entity.NavigationContentError
	default:
		return entity.NavigationNetworkFailure
	}
}
