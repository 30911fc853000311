package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/opsboard/internal/service"
	"github.com/MKhiriev/opsboard/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnauthorized:            http.StatusUnauthorized,
	service.ErrSessionNotFound:         http.StatusUnauthorized,
	service.ErrUnknownDomain:           http.StatusNotFound,
	service.ErrUsageLimitReached:       http.StatusTooManyRequests,
	service.ErrProviderUnavailable:     http.StatusBadGateway,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrLastAdminProtected:    http.StatusConflict,
	store.ErrInvalidRoleStored:     http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
