package model

// Closed option sets rendered by the consultation form. The server checks
// presence only; set membership is the client pre-check's concern.

var Services = []string{
	"visa-processing",
	"immigration",
	"career-counseling",
	"study-abroad",
}

var States = []string{
	"Andhra Pradesh",
	"Delhi",
	"Goa",
	"Gujarat",
	"Haryana",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Punjab",
	"Rajasthan",
	"Tamil Nadu",
	"Telangana",
	"Uttar Pradesh",
	"West Bengal",
}

var EnglishLevels = []string{
	"Excellent (8+ Band)",
	"Good (7 Band)",
	"Average (6 Band)",
	"Basic (5 Band)",
}

var AgeGroups = []string{
	"18-35 years",
	"36-45 years",
	"46+ years",
}

var EducationLevels = []string{
	"Post Graduation",
	"Graduation",
	"Diploma",
	"12th Pass",
}

var ExperienceLevels = []string{
	"No experience",
	"1 year",
	"2-5 years",
	"5+ years",
}

var VisaTypes = []string{
	"Work Permit",
	"Student Visa",
	"Permanent Residency",
	"Visitor Visa",
}

func Contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
