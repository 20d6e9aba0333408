package entity

// Country país disponible para direcciones.
type Country struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// State estado/provincia; el nombre se usa para decidir CGST+SGST vs IGST.
type State struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	CountryCode string `json:"country_code" yaml:"-"`
}
