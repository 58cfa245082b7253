package dto

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type UsuarioResponse struct {
	IDUsuario int64  `json:"id_usuario"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Perfil    string `json:"perfil"`
	Ativo     bool   `json:"ativo"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Usuario     UsuarioResponse `json:"usuario"`
}

type CriarUsuarioRequest struct {
	Nome   string `json:"nome"   validate:"required,min=2"`
	Email  string `json:"email"  validate:"required,email"`
	Senha  string `json:"senha"  validate:"required,min=4"`
	Perfil string `json:"perfil" validate:"required,oneof=Vendedora Estoquista 'Gerente de Operações'"`
}
