package specification

import (
	"gorm.io/gorm"
)

// NameLike matches college names by substring, case-insensitive.
type NameLike struct {
	Name string
}

func (s NameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cn_name ILIKE ?", "%"+s.Name+"%")
}

type ProvinceIn struct {
	Provinces []string
}

func (s ProvinceIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("province_name IN ?", s.Provinces)
}

type CategoryIn struct {
	Categories []string
}

func (s CategoryIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IN ?", s.Categories)
}

type NatureTypeIn struct {
	NatureTypes []string
}

func (s NatureTypeIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("nature_type IN ?", s.NatureTypes)
}
