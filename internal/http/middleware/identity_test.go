package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"transportmarket/internal/domain"
)

func identityProbe(t *testing.T) (http.Handler, *Identity, *bool) {
	t.Helper()

	var got Identity
	var present bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return WithIdentity(next), &got, &present
}

func TestWithIdentity_StoresHeaders(t *testing.T) {
	t.Parallel()

	h, got, present := identityProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "courier-1")
	r.Header.Set("X-User-Role", "courier")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.True(t, *present)
	require.Equal(t, "courier-1", got.ID)
	require.Equal(t, domain.RoleCourier, got.Role)
}

func TestWithIdentity_PassesThroughWithoutHeaders(t *testing.T) {
	t.Parallel()

	h, _, present := identityProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.False(t, *present)
}

func TestWithIdentity_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	h, _, present := identityProbe(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-ID", "user-1")
	r.Header.Set("X-User-Role", "superuser")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.False(t, *present, "an unknown role must not produce an identity")
}
