package models

// Municipality is a reference row for the municipalities the system serves.
// The catalog is seeded by migrations and read-only at runtime.
type Municipality struct {
	Base
	Name  string `gorm:"not null" json:"name"`
	State string `json:"state"`

	Parks []Park `gorm:"foreignKey:MunicipalityID" json:"parks,omitempty"`
}

// Park is a reference row for a public park within a municipality.
type Park struct {
	Base
	MunicipalityID uint   `gorm:"not null;index" json:"municipalityId"`
	Name           string `gorm:"not null" json:"name"`
	Address        string `json:"address"`

	Municipality *Municipality `gorm:"foreignKey:MunicipalityID" json:"municipality,omitempty"`
}
