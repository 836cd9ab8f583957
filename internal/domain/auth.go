package domain

// SubjectType differentiates client vs staff tokens.
type SubjectType string

const (
	SubjectTypeClient SubjectType = "CLIENT"
	SubjectTypeStaff  SubjectType = "STAFF"
)
