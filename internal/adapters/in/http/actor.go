package http

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
	HeaderOfficeID  = "X-Office-Id"

	actorKey = "actor"
)

// ErrMissingActor is returned by endpoints that need a caller identity when
// the request carries none.
var ErrMissingActor = errors.New("actor headers are required")

// ActorMiddleware resolves the caller from the identity headers. Requests
// without X-Actor-Id pass through anonymously; malformed headers are
// rejected.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header
			if header.Get(HeaderActorID) == "" {
				return next(c)
			}

			actor, err := parseActor(header.Get(HeaderActorID), header.Get(HeaderActorRole), header.Get(HeaderOfficeID))
			if err != nil {
				return err
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func parseActor(rawID, rawRole, rawOffice string) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}
	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return kernel.Actor{}, err
	}

	actor := kernel.Actor{ID: id, Role: role}
	if rawOffice != "" {
		office, err := kernel.UUIDFromString(rawOffice)
		if err != nil {
			return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderOfficeID, err)
		}
		actor.OfficeID = &office
	}
	return actor, nil
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, ErrMissingActor
	}
	return actor, nil
}
