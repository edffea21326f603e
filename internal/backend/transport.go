package backend

import (
	"net/http"
	"strings"
)

// TokenSource entrega el token vigente de la sesión. Lo implementa
// session.Manager; la lectura es síncrona y sin efectos porque el relay la
// ejecuta en cada petición.
type TokenSource interface {
	Token() string
}

// AuthTransport relay de autorización: añade "Authorization: Bearer <token>"
// a toda petición saliente excepto login y registro. Si no hay token la
// petición pasa sin modificar (el backend es quien rechaza llamadas no
// autenticadas). Nunca muta la sesión y nunca inspecciona respuestas.
type AuthTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if esRutaAuth(req.URL.Path) {
		return base.RoundTrip(req)
	}

	var token string
	if t.Tokens != nil {
		token = t.Tokens.Token()
	}
	if token == "" {
		return base.RoundTrip(req)
	}

	// RoundTrip no debe modificar la petición original: se trabaja sobre un clon.
	clon := req.Clone(req.Context())
	clon.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clon)
}

// esRutaAuth rutas que nunca llevan token (coincide por sufijo de path para
// ser independiente del prefijo base configurado).
func esRutaAuth(path string) bool {
	return strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/register")
}
