package contracts

import (
	"time"

	"staffhub/api-gateway/models"
)

// DocumentBinding builds the template data for the contract document view.
// The assignment must carry its contract row.
func DocumentBinding(assignment *models.ContractAssignment, profile *models.Profile, companyName, companyAddress string) map[string]interface{} {
	renderedAt := time.Now()
	if assignment.SignedAt != nil {
		renderedAt = *assignment.SignedAt
	}
	vars := ProfileVariables(profile, companyName, companyAddress, renderedAt)

	binding := map[string]interface{}{
		"Title":    assignment.Contract.Title,
		"Content":  Substitute(assignment.Contract.Content, vars),
		"FullName": profile.FullName(),
		"Signed":   assignment.Signed(),
		"Date":     renderedAt.Format("02.01.2006"),
	}
	if assignment.SignatureData != nil {
		binding["SignatureData"] = *assignment.SignatureData
	}
	return binding
}
