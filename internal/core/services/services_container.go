package services

import (
	portsrepo "github.com/SscSPs/drive_thru_order_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/drive_thru_order_app/internal/core/ports/services"
	"github.com/SscSPs/drive_thru_order_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// translator and publisher may be nil when the corresponding collaborator is disabled.
func NewServiceContainer(cfg *config.Config, sessionID string, repos portsrepo.RepositoryProvider, translator portssvc.ActionTranslator, publisher EntryPublisher) *portssvc.ServiceContainer {
	options := []OrderServiceOption{WithProjectionCheck(cfg.VerifyProjection)}
	if translator != nil {
		options = append(options, WithTranslator(translator, cfg.TranslatorTimeout))
	}
	if publisher != nil {
		options = append(options, WithEntryPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		Order:     NewOrderService(repos.LedgerRepo, options...),
		SessionID: sessionID,
	}
}
