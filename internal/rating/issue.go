package rating

import "strings"

// issueColumns are the rated issue columns of the warehouse view, in the
// order the extraction query unpivots them.
var issueColumns = []string{
	"ABORTION_REPRODUCTIVE_RIGHTS",
	"DEFENSE_SPENDING",
	"ENVIRONMENT_REGULATIONS_RENEWABLE_ENERGY",
	"GUN_CONTROL",
	"UNIVERSAL_HEALTHCARE",
	"STRONGER_IMMIGRATION_CONTROL",
	"EDUCATION_SPENDING",
	"SOCIAL_MEDIA_REGULATION",
	"RAISING_MINIMUM_WAGE",
	"AFFORDABLE_HOUSING_SPENDING",
	"FAMILY_MEDICAL_LEAVE_BENEFITS",
	"MILITARY_AID_TO_UKRAINE",
	"UNION_SUPPORT",
	"SOCIAL_SECURITY_MEDICARE_EXPANSION",
	"WORKPLACE_SAFETY",
	"LGBTQ_RIGHTS",
	"DEI",
	"ISRAEL",
}

// specialIssueNames overrides the generic title-case rendering for issues
// whose display form uses "&" or fixed casing.
var specialIssueNames = map[string]string{
	"ABORTION_REPRODUCTIVE_RIGHTS":             "Abortion & Reproductive Rights",
	"ENVIRONMENT_REGULATIONS_RENEWABLE_ENERGY": "Environment Regulations & Renewable Energy",
	"SOCIAL_SECURITY_MEDICARE_EXPANSION":       "Social Security & Medicare Expansion",
	"LGBTQ_RIGHTS":                             "LGBTQ Rights",
	"DEI":                                      "DEI",
	"ISRAEL":                                   "Israel",
}

// Columns returns a copy of the rated issue column list.
func Columns() []string {
	out := make([]string, len(issueColumns))
	copy(out, issueColumns)
	return out
}

// DisplayName converts a warehouse issue column to its display form, e.g.
// "DEFENSE_SPENDING" -> "Defense Spending".
func DisplayName(col string) string {
	if name, ok := specialIssueNames[col]; ok {
		return name
	}
	parts := strings.Split(col, "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// capitalize uppercases the first letter and lowercases the rest, matching
// how the view column names were originally derived.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
