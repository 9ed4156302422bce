/*
auth.go - Request identity resolution

PURPOSE:
  Turns the inbound credential into a Principal (subject, role,
  organization) and attaches it to the request context. The engine never
  sees credentials: handlers pass the resolved Principal (or the
  directory.Actor derived from it) explicitly into every operation.

PROVIDERS:
  IdentityProvider is the narrow contract to the external identity
  service. StaticProvider is the dev/test implementation: a fixed
  token -> principal table. Production plugs the real provider in at
  cmd/server wiring time; nothing else changes.
*/
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/warp/shift-engine/directory"
	"github.com/warp/shift-engine/schedule"
)

// Principal is the resolved caller identity for one request.
type Principal struct {
	SubjectID      string
	Role           string
	OrganizationID *schedule.OrganizationID
}

// Actor converts the principal into the directory's explicit actor form.
func (p Principal) Actor() directory.Actor {
	return directory.Actor{
		SubjectID:      p.SubjectID,
		Role:           p.Role,
		OrganizationID: p.OrganizationID,
	}
}

// IdentityProvider authenticates a bearer credential.
type IdentityProvider interface {
	// Resolve returns the principal for a credential, or an error when the
	// credential does not verify.
	Resolve(ctx context.Context, credential string) (Principal, error)
}

var errUnverified = errors.New("credential not verified")

// StaticProvider resolves from a fixed token table. Dev and test use only.
type StaticProvider struct {
	tokens map[string]Principal
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{tokens: make(map[string]Principal)}
}

func (sp *StaticProvider) Register(token string, p Principal) {
	sp.tokens[token] = p
}

func (sp *StaticProvider) Resolve(_ context.Context, credential string) (Principal, error) {
	p, ok := sp.tokens[credential]
	if !ok {
		return Principal{}, errUnverified
	}
	return p, nil
}

type principalKey struct{}

// Authenticate resolves the Authorization bearer token and stores the
// principal on the request context. Unresolvable credentials get 401.
func Authenticate(provider IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing credentials", nil)
				return
			}
			principal, err := provider.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the request principal set by Authenticate.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
