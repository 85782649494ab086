package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wakili/internal/identity"
	"wakili/internal/model"
	"wakili/internal/proxy"
	"wakili/internal/store"
)

// ErrMissingField indicates a required input is absent.
var ErrMissingField = errors.New("required field is missing")

// Completion parameters per workflow. Advice allows a slightly looser style;
// document generation trades length for determinism.
const (
	adviceMaxTokens      = 1000
	adviceTemperature    = 0.7
	documentMaxTokens    = 1500
	documentTemperature  = 0.5
	defaultDocumentType  = "general"
	defaultContext       = "no additional context"
	adviceConfidential   = "This request is confidential - do not include any identifying information in the response."
	documentConfidential = "This document must be anonymized and not contain any identifying information."
)

// AdvisorService defines the caller-facing use cases. Every operation guards
// against the anonymous caller before touching any state.
type AdvisorService interface {
	// GenerateAdvice forwards a legal question to the completion proxy and
	// returns the raw answer, optionally formatted as a document when a
	// document type was requested. Nothing is stored.
	GenerateAdvice(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error)

	// GenerateDocument requires a document type, generates and formats the
	// document, stores it, and bumps the caller's document count. The
	// response's request ID is the stored document key.
	GenerateDocument(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error)

	// GetDocument returns a stored document by key. Ownership is encoded in
	// the key itself; no additional check is made here.
	GetDocument(ctx context.Context, caller identity.Caller, key string) (string, error)

	// ListUserDocuments returns the caller's own documents.
	ListUserDocuments(ctx context.Context, caller identity.Caller) ([]model.Document, error)

	// GetProfile returns the caller's profile.
	GetProfile(ctx context.Context, caller identity.Caller) (*model.UserProfile, error)

	// UpdateUserName sets the profile display name, creating the profile if absent.
	UpdateUserName(ctx context.Context, caller identity.Caller, name string) error
}

type advisorService struct {
	profiles  store.ProfileStore
	documents store.DocumentStore
	proxy     proxy.Client
	now       func() time.Time
}

// NewAdvisorService constructs a new AdvisorService.
func NewAdvisorService(profiles store.ProfileStore, documents store.DocumentStore, client proxy.Client) AdvisorService {
	return &advisorService{
		profiles:  profiles,
		documents: documents,
		proxy:     client,
		now:       time.Now,
	}
}

func (s *advisorService) GenerateAdvice(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error) {
	if err := identity.Require(caller); err != nil {
		return nil, err
	}
	if err := s.profiles.Touch(ctx, caller); err != nil {
		return nil, fmt.Errorf("touch profile: %w", err)
	}

	prompt := fmt.Sprintf(
		"As a legal AI advisor, provide %s advice for: %s. Context: %s. %s",
		valueOr(req.DocumentType, defaultDocumentType),
		req.Prompt,
		valueOr(req.Context, defaultContext),
		confidentialClause(req.IsConfidential, adviceConfidential),
	)

	result, err := s.complete(ctx, prompt, adviceMaxTokens, adviceTemperature)
	if err != nil {
		return nil, err
	}

	var document *string
	if req.DocumentType != nil {
		d := FormatDocument(result, *req.DocumentType, s.now())
		document = &d
	}

	requestID := strconv.FormatInt(s.now().UnixNano(), 10)
	return &model.LegalResponse{
		Response:  result,
		Document:  document,
		Status:    "success",
		RequestID: &requestID,
	}, nil
}

func (s *advisorService) GenerateDocument(ctx context.Context, caller identity.Caller, req model.LegalRequest) (*model.LegalResponse, error) {
	if err := identity.Require(caller); err != nil {
		return nil, err
	}
	if err := s.profiles.Touch(ctx, caller); err != nil {
		return nil, fmt.Errorf("touch profile: %w", err)
	}

	// Checked before any network call is attempted.
	if req.DocumentType == nil || *req.DocumentType == "" {
		return nil, fmt.Errorf("%w: document_type", ErrMissingField)
	}
	docType := *req.DocumentType

	prompt := fmt.Sprintf(
		"Generate a professional legal %s document with these requirements: %s. Context: %s. %s",
		docType,
		req.Prompt,
		valueOr(req.Context, defaultContext),
		confidentialClause(req.IsConfidential, documentConfidential),
	)

	result, err := s.complete(ctx, prompt, documentMaxTokens, documentTemperature)
	if err != nil {
		return nil, err
	}

	now := s.now()
	document := FormatDocument(result, docType, now)
	key := store.DocumentKey(caller, now)

	if err := s.documents.Put(ctx, key, document); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	if err := s.profiles.IncrementDocumentCount(ctx, caller); err != nil {
		return nil, fmt.Errorf("increment document count: %w", err)
	}

	return &model.LegalResponse{
		Response:  "Document generated successfully",
		Document:  &document,
		Status:    "success",
		RequestID: &key,
	}, nil
}

func (s *advisorService) GetDocument(ctx context.Context, caller identity.Caller, key string) (string, error) {
	if err := identity.Require(caller); err != nil {
		return "", err
	}
	return s.documents.Get(ctx, key)
}

func (s *advisorService) ListUserDocuments(ctx context.Context, caller identity.Caller) ([]model.Document, error) {
	if err := identity.Require(caller); err != nil {
		return nil, err
	}
	return s.documents.ListByOwner(ctx, caller)
}

func (s *advisorService) GetProfile(ctx context.Context, caller identity.Caller) (*model.UserProfile, error) {
	if err := identity.Require(caller); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, caller)
}

func (s *advisorService) UpdateUserName(ctx context.Context, caller identity.Caller, name string) error {
	if err := identity.Require(caller); err != nil {
		return err
	}
	return s.profiles.SetName(ctx, caller, name)
}

// complete performs the single proxy round-trip for both workflows.
// Failures are returned as-is; the proxy client already classified them.
func (s *advisorService) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	result, err := s.proxy.Complete(ctx, proxy.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		IsLegal:     true,
	})
	if err != nil {
		return "", fmt.Errorf("completion proxy: %w", err)
	}
	return result, nil
}

func valueOr(v *string, def string) string {
	if v != nil && *v != "" {
		return *v
	}
	return def
}

// confidentialClause returns the workflow-specific anonymization instruction.
// The wording intentionally differs between advice and document generation.
func confidentialClause(confidential *bool, clause string) string {
	if confidential != nil && *confidential {
		return clause
	}
	return ""
}
