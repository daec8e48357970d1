package models

// Account is a row of the usuarios table. Password holds the bcrypt hash
// and must never be serialized to clients; use the profile views instead.
type Account struct {
	ID       string
	Usuario  string
	Password string
	Nombre   string
	Email    string
	Rol      string
	Telefono string
	Activo   bool
}

// LoginProfile is returned alongside a freshly issued token.
type LoginProfile struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Usuario string `json:"usuario"`
	Email   string `json:"email"`
	Rol     string `json:"rol"`
}

// Profile is returned by the session introspection endpoint.
type Profile struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Usuario  string `json:"usuario"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono"`
}

func (a *Account) LoginProfile() LoginProfile {
	return LoginProfile{ID: a.ID, Nombre: a.Nombre, Usuario: a.Usuario, Email: a.Email, Rol: a.Rol}
}

func (a *Account) Profile() Profile {
	return Profile{ID: a.ID, Nombre: a.Nombre, Email: a.Email, Usuario: a.Usuario, Rol: a.Rol, Telefono: a.Telefono}
}

// NewAccount is the seed tool's input: a plaintext password that gets hashed
// before it reaches the repository.
type NewAccount struct {
	ID       string `json:"id,omitempty"`
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono"`
	Activo   *bool  `json:"activo,omitempty"`
}
