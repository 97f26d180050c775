package handler

import (
	"strings"

	dErrors "journal-service/pkg/domain-errors"
)

// ReconcileDOIRequest is the body of POST /journals/doi.
type ReconcileDOIRequest struct {
	DOI string `json:"doi"`
}

func (r *ReconcileDOIRequest) Normalize() {
	r.DOI = strings.TrimSpace(r.DOI)
}

func (r *ReconcileDOIRequest) Validate() error {
	if r.DOI == "" {
		return dErrors.New(dErrors.CodeValidation, "doi is required")
	}
	if len(r.DOI) > 512 {
		return dErrors.New(dErrors.CodeValidation, "doi is too long")
	}
	return nil
}
