// Package settings owns the one locally stored preference: the UI language.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"go.uber.org/zap"
)

// LanguageKey is the preference key the language is stored under.
const LanguageKey = "language"

// ErrInvalidInput indicates an unsupported language.
var ErrInvalidInput = errors.New("unsupported language")

// PreferenceRepository is a small key-value store.
// Get returns repository.ErrNotFound for unset keys.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Service reads and changes the language preference.
type Service struct {
	repo   PreferenceRepository
	logger *zap.Logger
}

// NewService creates a new settings service.
func NewService(repo PreferenceRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Language returns the stored language, or the default when none is stored.
// A stored value that is no longer supported also yields the default.
func (s *Service) Language(ctx context.Context) (i18n.Language, error) {
	v, err := s.repo.Get(ctx, LanguageKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return i18n.Default, nil
		}
		return "", fmt.Errorf("reading language: %w", err)
	}
	lang, ok := i18n.Match(v)
	if !ok {
		s.logger.Warn("ignoring unsupported stored language", zap.String("value", v))
		return i18n.Default, nil
	}
	return lang, nil
}

// SetLanguage stores the language named by tag ("english", "pt-BR", ...).
func (s *Service) SetLanguage(ctx context.Context, tag string) (i18n.Language, error) {
	lang, ok := i18n.Match(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, tag)
	}
	if err := s.repo.Set(ctx, LanguageKey, string(lang)); err != nil {
		return "", fmt.Errorf("saving language: %w", err)
	}
	s.logger.Info("language changed", zap.String("language", string(lang)))
	return lang, nil
}

// Toggle switches between English and Portuguese.
func (s *Service) Toggle(ctx context.Context) (i18n.Language, error) {
	cur, err := s.Language(ctx)
	if err != nil {
		return "", err
	}
	return s.SetLanguage(ctx, string(cur.Other()))
}

// Catalog returns the message catalog of the stored language.
func (s *Service) Catalog(ctx context.Context) (i18n.Catalog, error) {
	lang, err := s.Language(ctx)
	if err != nil {
		return i18n.MustLookup(i18n.Default), err
	}
	return i18n.MustLookup(lang), nil
}
