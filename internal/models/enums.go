package models

// Severity is the citizen-assessed severity of a pothole.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ParseSeverity maps a raw string onto the closed severity domain.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s), true
	}
	return "", false
}

// ReportStatus is the repair-workflow state of a report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "PENDING"
	StatusVerified   ReportStatus = "VERIFIED"
	StatusRejected   ReportStatus = "REJECTED"
	StatusInProgress ReportStatus = "IN_PROGRESS"
	StatusCompleted  ReportStatus = "COMPLETED"
)

func ParseReportStatus(s string) (ReportStatus, bool) {
	switch ReportStatus(s) {
	case StatusPending, StatusVerified, StatusRejected, StatusInProgress, StatusCompleted:
		return ReportStatus(s), true
	}
	return "", false
}

// VerificationDecision is the recorded outcome of a staff review event.
type VerificationDecision string

const (
	DecisionApproved VerificationDecision = "APPROVED"
	DecisionRejected VerificationDecision = "REJECTED"
	DecisionNeedInfo VerificationDecision = "NEED_INFO"
)

func ParseVerificationDecision(s string) (VerificationDecision, bool) {
	switch VerificationDecision(s) {
	case DecisionApproved, DecisionRejected, DecisionNeedInfo:
		return VerificationDecision(s), true
	}
	return "", false
}
