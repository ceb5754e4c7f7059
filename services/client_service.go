package services

import (
	"context"

	"itdocsapi/repository"
	"itdocsapi/services/dto"
)

// ClientService builds the nested client views.
type ClientService interface {
	// Tree returns one client with its sites and their addresses.
	Tree(ctx context.Context, id uint) (*dto.ClientView, error)
	// Trees returns every client as a nested view, ordered by id.
	Trees(ctx context.Context) ([]dto.ClientView, error)
}

type clientService struct {
	baseRepo   repository.BaseRepository
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service instance.
func NewClientService() ClientService {
	return &clientService{
		baseRepo:   repository.NewBaseRepository(),
		clientRepo: repository.NewClientRepository(),
	}
}

// NewClientServiceWithDeps creates a service instance with injected dependencies.
func NewClientServiceWithDeps(baseRepo repository.BaseRepository, clientRepo repository.ClientRepository) ClientService {
	return &clientService{
		baseRepo:   baseRepo,
		clientRepo: clientRepo,
	}
}

func (s *clientService) Tree(ctx context.Context, id uint) (*dto.ClientView, error) {
	client, err := s.clientRepo.GetTree(s.baseRepo.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	view := dto.NewClientView(*client)
	return &view, nil
}

func (s *clientService) Trees(ctx context.Context) ([]dto.ClientView, error) {
	clients, err := s.clientRepo.GetAllTrees(s.baseRepo.Conn(ctx))
	if err != nil {
		return nil, err
	}
	views := make([]dto.ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, dto.NewClientView(c))
	}
	return views, nil
}
