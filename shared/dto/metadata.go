package dto

import (
	"meetspace/shared/constant"
	"meetspace/shared/model"
	"meetspace/shared/timezone"
)

// Metadata is the audit block embedded in every resource response.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at"`
	ModifiedBy string `json:"modified_by"`
}

func NewMetadata(src model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  timezone.Format(src.CreatedAt, constant.DateFormat),
		CreatedBy:  src.CreatedBy,
		ModifiedAt: timezone.Format(src.ModifiedAt, constant.DateFormat),
		ModifiedBy: src.ModifiedBy,
	}
}
