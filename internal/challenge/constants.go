package challenge

import "time"

// Challenge-page signatures. A document matches when its title contains one
// of the title signatures or its leading body text contains one of the body
// signatures, compared case-insensitively.
var (
	titleSignatures = []string{
		"just a moment",
		"attention required",
		"access denied",
		"verification required",
	}
	bodySignatures = []string{
		"checking your browser before accessing",
		"verifying you are human",
		"ddos protection by",
		"please enable javascript and cookies",
		"needs to review the security of your connection",
	}
)

// BodyPrefixLen bounds how much leading body text is inspected
const BodyPrefixLen = 512

// Default wait tuning
const (
	DefaultPollInterval = 2 * time.Second
	DefaultBudgetFull   = 90 * time.Second
	DefaultBudgetCheck  = 30 * time.Second
)

// Log message constants
const (
	LogMsgChallengeDetected = "challenge page detected, waiting for clearance"
	LogMsgChallengeCleared  = "challenge cleared"
	LogMsgChallengeTimedOut = "challenge wait budget exhausted, proceeding best-effort"
)
