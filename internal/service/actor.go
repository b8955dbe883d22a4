package service

import (
	"context"
	"fmt"

	"go-floor-inventory/internal/model"
)

type actorKey struct{}

// WithActor stores the authenticated caller in ctx
func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorResolver maps the caller of an operation to a display identity
type ActorResolver interface {
	CurrentActor(ctx context.Context) (*model.Actor, error)
}

type sessionActorResolver struct{}

// NewSessionActorResolver resolves the actor placed in the context by the auth middleware
func NewSessionActorResolver() ActorResolver {
	return sessionActorResolver{}
}

func (sessionActorResolver) CurrentActor(ctx context.Context) (*model.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(*model.Actor)
	if !ok || actor == nil {
		return nil, fmt.Errorf("%w: no session", ErrAuth)
	}
	if actor.DisplayName == "" {
		return nil, fmt.Errorf("%w: session has no display name", ErrAuth)
	}
	return actor, nil
}
