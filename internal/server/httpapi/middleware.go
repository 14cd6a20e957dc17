package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/gate"
)

type contextKey string

const sessionKey contextKey = "session"

// withSession authenticates the request from its bearer token and stores the
// decoded session in the request context.
func (a *API) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AccessTokenHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrInvalidToken)
			return
		}

		sess, err := a.users.ParseToken(token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin allows only sessions carrying the admin flag.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := sessionFrom(r.Context()); sess == nil || !sess.Admin {
			writeError(w, common.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(ctx context.Context) *gate.Session {
	sess, _ := ctx.Value(sessionKey).(*gate.Session)
	return sess
}
