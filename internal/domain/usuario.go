package domain

// RolAdministrador marca en roles que habilita la consola de administración.
const RolAdministrador = "Administrador"

// AuthResponse payload que devuelve el backend en login y register.
// Se persiste completo como registro de usuario de la sesión.
type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	ID           int      `json:"id"`
	Nombre       string   `json:"nombre"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
}

// EsAdmin indica si el usuario tiene el rol de administrador.
func (a *AuthResponse) EsAdmin() bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == RolAdministrador {
			return true
		}
	}
	return false
}

// LoginRequest credenciales para POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest alta de usuario para POST /auth/register.
type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UnlockRequest desbloqueo de cuenta con código enviado por email.
type UnlockRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Mensaje respuesta genérica {message} de los endpoints de auth sin estado.
type Mensaje struct {
	Message string `json:"message"`
}
