package domain

// MaxPaisNombreLength bounds Pais.Nombre.
const MaxPaisNombreLength = 100

// Pais is a country. Nombre is unique across all paises.
type Pais struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Validate checks the field rules of a Pais.
func (p *Pais) Validate() error {
	return validateLength("nombre", p.Nombre, 1, MaxPaisNombreLength)
}

// PaisPatch carries the optional fields of a partial pais update.
type PaisPatch struct {
	Nombre *string
}

// Apply copies every set field of patch onto p.
func (p *Pais) Apply(patch PaisPatch) {
	if patch.Nombre != nil {
		p.Nombre = *patch.Nombre
	}
}
