package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service"
)

// AutoRequest is the body of POST /autos/ and PUT /autos/{id}.
type AutoRequest struct {
	Marca  string          `json:"marca"  validate:"required,min=1,max=50"`
	Modelo string          `json:"modelo" validate:"required,min=1,max=50"`
	Anio   int             `json:"anio"   validate:"required,gt=1900,lte=2030"`
	Precio decimal.Decimal `json:"precio" validate:"required,gt=0"`
}

func (req AutoRequest) toDomain() *domain.Auto {
	return &domain.Auto{
		Marca:  req.Marca,
		Modelo: req.Modelo,
		Anio:   req.Anio,
		Precio: req.Precio,
	}
}

// AutoResponse is the JSON form of an auto.
type AutoResponse struct {
	ID     int64   `json:"id"`
	Marca  string  `json:"marca"`
	Modelo string  `json:"modelo"`
	Anio   int     `json:"anio"`
	Precio float64 `json:"precio"`
}

func autoToResponse(a *domain.Auto) AutoResponse {
	return AutoResponse{
		ID:     a.ID,
		Marca:  a.Marca,
		Modelo: a.Modelo,
		Anio:   a.Anio,
		Precio: a.Precio.InexactFloat64(),
	}
}

func autosToResponse(autos []*domain.Auto) []AutoResponse {
	out := make([]AutoResponse, 0, len(autos))
	for _, a := range autos {
		out = append(out, autoToResponse(a))
	}
	return out
}

// VentaRequest is the body of POST /ventas/ and PUT /ventas/{id}.
type VentaRequest struct {
	Fecha    string          `json:"fecha"    validate:"required"`
	Cantidad int             `json:"cantidad" validate:"required,gt=0"`
	Total    decimal.Decimal `json:"total"    validate:"required,gt=0"`
	AutoID   int64           `json:"auto_id"  validate:"required,gt=0"`
}

func (req VentaRequest) toDomain() (*domain.Venta, error) {
	fecha, err := domain.ParseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	return &domain.Venta{
		Fecha:    fecha,
		Cantidad: req.Cantidad,
		Total:    req.Total,
		AutoID:   req.AutoID,
	}, nil
}

// VentaResponse is the JSON form of a venta.
type VentaResponse struct {
	ID       int64   `json:"id"`
	Fecha    string  `json:"fecha"`
	Cantidad int     `json:"cantidad"`
	Total    float64 `json:"total"`
	AutoID   int64   `json:"auto_id"`
}

func ventaToResponse(v *domain.Venta) VentaResponse {
	return VentaResponse{
		ID:       v.ID,
		Fecha:    v.Fecha.Format(domain.DateLayout),
		Cantidad: v.Cantidad,
		Total:    v.Total.InexactFloat64(),
		AutoID:   v.AutoID,
	}
}

func ventasToResponse(ventas []*domain.Venta) []VentaResponse {
	out := make([]VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, ventaToResponse(v))
	}
	return out
}

// PaisCreateRequest is the body of POST /paises/.
type PaisCreateRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

// PaisUpdateRequest is the body of PATCH /paises/{id}.
type PaisUpdateRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=100"`
}

// PaisResponse is the JSON form of a pais.
type PaisResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

func paisToResponse(p *domain.Pais) PaisResponse {
	return PaisResponse{ID: p.ID, Nombre: p.Nombre}
}

// PersonaCreateRequest is the body of POST /personas/.
type PersonaCreateRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=1,max=100"`
	Apellido string `json:"apellido" validate:"required,min=1,max=100"`
	Edad     *int   `json:"edad"     validate:"required,gte=0,lte=150"`
	PaisID   *int64 `json:"pais_id"  validate:"omitempty,gt=0"`
}

func (req PersonaCreateRequest) toDomain() *domain.Persona {
	return &domain.Persona{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Edad:     *req.Edad,
		PaisID:   req.PaisID,
	}
}

// PersonaUpdateRequest is the body of PATCH /personas/{id}. Every field is
// optional; an explicit "pais_id": null detaches the persona from its pais.
type PersonaUpdateRequest struct {
	Nombre   *string    `json:"nombre"   validate:"omitempty,min=1,max=100"`
	Apellido *string    `json:"apellido" validate:"omitempty,min=1,max=100"`
	Edad     *int       `json:"edad"     validate:"omitempty,gte=0,lte=150"`
	PaisID   NullableID `json:"pais_id"`
}

func (req PersonaUpdateRequest) toPatch() domain.PersonaPatch {
	patch := domain.PersonaPatch{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Edad:     req.Edad,
	}
	if req.PaisID.Set {
		if req.PaisID.Value == nil {
			patch.ClearPais = true
		} else {
			patch.PaisID = req.PaisID.Value
		}
	}
	return patch
}

// PersonaResponse is the JSON form of a persona.
type PersonaResponse struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Edad     int    `json:"edad"`
	PaisID   *int64 `json:"pais_id"`
}

// PersonaDetailResponse is a persona with its pais embedded.
type PersonaDetailResponse struct {
	PersonaResponse
	Pais *PaisResponse `json:"pais"`
}

func personaToResponse(p *domain.Persona) PersonaResponse {
	return PersonaResponse{
		ID:       p.ID,
		Nombre:   p.Nombre,
		Apellido: p.Apellido,
		Edad:     p.Edad,
		PaisID:   p.PaisID,
	}
}

func personasToResponse(personas []*domain.Persona) []PersonaResponse {
	out := make([]PersonaResponse, 0, len(personas))
	for _, p := range personas {
		out = append(out, personaToResponse(p))
	}
	return out
}

func personaDetailToResponse(d *service.PersonaDetail) PersonaDetailResponse {
	resp := PersonaDetailResponse{PersonaResponse: personaToResponse(d.Persona)}
	if d.Pais != nil {
		pais := paisToResponse(d.Pais)
		resp.Pais = &pais
	}
	return resp
}

// UserCreateRequest is the body of POST /usuarios/.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// TokenRequest holds the credentials of POST /auth/token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the JSON form of a user. The password hash is never sent.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
