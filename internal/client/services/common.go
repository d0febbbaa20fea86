package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/client/client"
	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

// API is the request dispatcher shared by all services. *client.Client
// implements it.
type API interface {
	Do(ctx context.Context, req client.Request, out any) error
}

// SessionStore is the part of the session store the services need.
type SessionStore interface {
	Commit(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
	Restore(ctx context.Context) error
	UpdateUser(ctx context.Context, user models.User) error
	CurrentUser() (models.User, bool)
}

// invalid returns an error matching client.ErrValidation.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{client.ErrValidation}, args...)...)
}

// requireID rejects blank identifiers before anything is sent.
func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("%s id is required", kind)
	}
	return nil
}

// path joins escaped segments onto a resource root, e.g. path("/courses", id).
func path(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString(root)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(strings.TrimSpace(s)))
	}
	return b.String()
}

// currentOwner resolves the signed-in user's id for authored content.
func currentOwner(store SessionStore) (string, error) {
	u, ok := store.CurrentUser()
	if !ok {
		return "", invalid("sign in to create content")
	}
	return u.ID, nil
}

func pageQuery(page models.PageRequest, extra url.Values) url.Values {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	page.Apply(q)
	return q
}
