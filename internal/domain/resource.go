package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Ownership is embedded by every owned resource kind.
// The server assigns all four fields; client-supplied values are discarded on create.
type Ownership struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Ownership) Meta() *Ownership { return o }

// Resource is satisfied by a pointer to any struct embedding Ownership.
type Resource[T any] interface {
	*T
	Meta() *Ownership
}

// Patch is a partial update: nil fields are left unchanged.
type Patch[T any] interface {
	Apply(*T)
}

// Skills is a tag list. It decodes from either a JSON array or a comma separated string.
type Skills []string

func ParseSkills(raw ...string) Skills {
	out := Skills{}
	for _, chunk := range raw {
		for _, s := range strings.Split(chunk, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (s *Skills) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = normalizeSkills(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("skills must be an array of strings or a comma separated string")
	}
	*s = ParseSkills(raw)
	return nil
}

func (s Skills) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func normalizeSkills(list []string) Skills {
	out := make(Skills, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// OwnedRepository persists one resource kind. Every read and write is filtered by owner,
// so a row owned by someone else is indistinguishable from a missing one (ErrNotFound).
type OwnedRepository[T any, P any] interface {
	Create(ctx context.Context, item *T) error
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*T, error)
	Update(ctx context.Context, id, ownerID string, patch P) (*T, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// ResourceUsecase is the owner-scoped CRUD contract shared by the dashboard and public endpoints.
// List, Get, Create, Update and Delete act on behalf of the identity stored in ctx.
type ResourceUsecase[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error

	ListForOwner(ctx context.Context, ownerID string) ([]T, error)
	GetForOwner(ctx context.Context, ownerID, id string) (*T, error)
}

func assign[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
