package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy scopes a query to records owned by the user
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByConsultationID struct {
	ConsultationID uuid.UUID
}

func (s ByConsultationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("consultation_id = ?", s.ConsultationID)
}

type ByPatientID struct {
	PatientID uuid.UUID
}

func (s ByPatientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// MostRecent orders by field descending and keeps the first n rows
func MostRecent(field string, n int) []Specification {
	return []Specification{
		OrderBy{Field: field, Desc: true},
		Pagination{Limit: n},
	}
}
