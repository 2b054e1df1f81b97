package domain

// Field limits for Persona.
const (
	MaxPersonaNombreLength   = 100
	MaxPersonaApellidoLength = 100
	MinEdad                  = 0
	MaxEdad                  = 150
)

// Persona is a person, optionally tied to a Pais.
type Persona struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Edad     int    `json:"edad"`
	PaisID   *int64 `json:"pais_id"`
}

// Validate checks the field rules of a Persona.
func (p *Persona) Validate() error {
	if err := validateLength("nombre", p.Nombre, 1, MaxPersonaNombreLength); err != nil {
		return err
	}
	if err := validateLength("apellido", p.Apellido, 1, MaxPersonaApellidoLength); err != nil {
		return err
	}
	if p.Edad < MinEdad || p.Edad > MaxEdad {
		return NewValidationError("edad", "must be between 0 and 150")
	}
	if p.PaisID != nil && *p.PaisID <= 0 {
		return NewValidationError("pais_id", "must be a positive id")
	}
	return nil
}

// PersonaPatch carries the optional fields of a partial persona update.
// A set PaisID pointing at nil is not representable; clearing the pais is
// done with ClearPais.
type PersonaPatch struct {
	Nombre    *string
	Apellido  *string
	Edad      *int
	PaisID    *int64
	ClearPais bool
}

// Apply copies every set field of patch onto p.
func (p *Persona) Apply(patch PersonaPatch) {
	if patch.Nombre != nil {
		p.Nombre = *patch.Nombre
	}
	if patch.Apellido != nil {
		p.Apellido = *patch.Apellido
	}
	if patch.Edad != nil {
		p.Edad = *patch.Edad
	}
	if patch.ClearPais {
		p.PaisID = nil
	}
	if patch.PaisID != nil {
		id := *patch.PaisID
		p.PaisID = &id
	}
}
