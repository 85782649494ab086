package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocument(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	doc := FormatDocument("Use form X", "contract", ts)

	assert.True(t, strings.HasPrefix(doc, "LEGAL DOCUMENT: CONTRACT\n\n"))
	assert.Contains(t, doc, "Use form X")
	assert.Contains(t, doc, "Generated by Wakili Legal AI Advisor")
	assert.Contains(t, doc, "Timestamp: 2026-03-01T10:30:00Z")
	assert.Contains(t, doc, "DISCLAIMER: This document was generated by AI and should be reviewed by a qualified legal professional before use.")
}

func TestFormatDocument_ContentVerbatim(t *testing.T) {
	content := "line one\n\tindent & <symbols> preserved\n"
	doc := FormatDocument(content, "memo", time.Now())
	assert.Contains(t, doc, content)
}
