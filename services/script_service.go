package services

import (
	"context"
	"fmt"

	"itdocsapi/pkg/highlight"
	"itdocsapi/repository"
	"itdocsapi/services/dto"
)

// ScriptService renders stored scripts.
type ScriptService interface {
	View(ctx context.Context, id uint) (*dto.ScriptView, error)
	// Highlight renders the script as a standalone HTML page using its
	// language, style and line number settings.
	Highlight(ctx context.Context, id uint) (string, error)
}

type scriptService struct {
	baseRepo   repository.BaseRepository
	scriptRepo repository.ScriptRepository
}

// NewScriptService creates a new script service instance.
func NewScriptService() ScriptService {
	return &scriptService{
		baseRepo:   repository.NewBaseRepository(),
		scriptRepo: repository.NewScriptRepository(),
	}
}

// NewScriptServiceWithDeps creates a service instance with injected dependencies.
func NewScriptServiceWithDeps(baseRepo repository.BaseRepository, scriptRepo repository.ScriptRepository) ScriptService {
	return &scriptService{
		baseRepo:   baseRepo,
		scriptRepo: scriptRepo,
	}
}

func (s *scriptService) View(ctx context.Context, id uint) (*dto.ScriptView, error) {
	script, err := s.scriptRepo.GetByID(s.baseRepo.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	view := dto.NewScriptView(*script)
	return &view, nil
}

func (s *scriptService) Highlight(ctx context.Context, id uint) (string, error) {
	script, err := s.scriptRepo.GetByID(s.baseRepo.Conn(ctx), id)
	if err != nil {
		return "", err
	}
	html, err := highlight.HTML(script.Code, script.Language, script.Style, script.Linenos)
	if err != nil {
		return "", fmt.Errorf("failed to highlight script id=%d: %w", id, err)
	}
	return html, nil
}
