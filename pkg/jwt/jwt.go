package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// El cliente nunca firma ni verifica tokens: el secreto vive en el backend.
// Aquí solo se inspeccionan los claims estándar del token emitido en el login
// para poder mostrar cuándo expira la sesión.

// InfoToken claims relevantes para el cliente.
type InfoToken struct {
	Subject   string
	Expira    time.Time
	EmitidoEn time.Time
}

// Inspeccionar decodifica el token sin verificar la firma y devuelve los
// claims estándar. Error si el token está malformado o no trae exp.
func Inspeccionar(token string) (*InfoToken, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("token malformado: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("el token no incluye expiración")
	}
	info := &InfoToken{
		Subject: claims.Subject,
		Expira:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		info.EmitidoEn = claims.IssuedAt.Time
	}
	return info, nil
}

// Expirado indica si el token ya venció según su claim exp. Un token
// malformado se considera expirado.
func Expirado(token string) bool {
	info, err := Inspeccionar(token)
	if err != nil {
		return true
	}
	return time.Now().After(info.Expira)
}
