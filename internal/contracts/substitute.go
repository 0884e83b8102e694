// Package contracts implements the contract-signing workflow: placeholder
// substitution over contract text, signature capture, and the signed-state
// invariant.
package contracts

import (
	"strings"
	"time"

	"staffhub/api-gateway/models"
)

// Substitute replaces {{key}} placeholders in the contract body with the
// given values. Unknown placeholders are left intact so a half-configured
// contract stays visibly incomplete instead of silently losing text.
//
// The function is idempotent: placeholder syntax inside a value is defused
// before insertion, so reapplying it to already-substituted text changes
// nothing. Values are profile data; a token in there is never a template.
func Substitute(text string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", strings.ReplaceAll(value, "{{", "{ {"))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// ProfileVariables builds the substitution map for an employee profile,
// mirroring the fields the contract templates reference.
func ProfileVariables(profile *models.Profile, companyName, companyAddress string, now time.Time) map[string]string {
	vars := map[string]string{
		"full_name":       profile.FullName(),
		"email":           profile.Email,
		"date":            now.Format("02.01.2006"),
		"company_name":    companyName,
		"company_address": companyAddress,
	}
	setOptional := func(key string, value *string) {
		if value != nil {
			vars[key] = *value
		} else {
			vars[key] = ""
		}
	}
	setOptional("first_name", profile.FirstName)
	setOptional("last_name", profile.LastName)
	setOptional("street", profile.Street)
	setOptional("postal_code", profile.PostalCode)
	setOptional("city", profile.City)
	setOptional("date_of_birth", profile.DateOfBirth)
	return vars
}
