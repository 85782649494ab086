package service

import (
	"fmt"
	"strings"
	"time"
)

// FormatDocument renders raw completion output into the fixed document
// template: uppercase type header, verbatim content, attribution footer,
// timestamp, and the mandatory review disclaimer. Pure function.
func FormatDocument(content, docType string, ts time.Time) string {
	return fmt.Sprintf(
		"LEGAL DOCUMENT: %s\n\n%s\n\n---\nGenerated by Wakili Legal AI Advisor\nTimestamp: %s\n\nDISCLAIMER: This document was generated by AI and should be reviewed by a qualified legal professional before use.",
		strings.ToUpper(docType),
		content,
		ts.UTC().Format(time.RFC3339),
	)
}
