package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
)

// ContainerDeps carries everything the service layer is wired from. The
// account wiring mirrors a deployment: one administrator for ledger and
// registry, one market owner, and a treasury account that is the market's
// identity on the other two subsystems.
type ContainerDeps struct {
	AdminAccount    domain.AccountID
	MarketOwner     domain.AccountID
	MarketTreasury  domain.AccountID
	MetadataBaseURI string

	AdminSecret string
	JWTSecret   string
	JWTExpiry   time.Duration
	JWTIssuer   string

	EventStore portsrepo.EventStore
	Logger     *slog.Logger
}

// NewServiceContainer builds the full service graph and performs the
// capability bootstrap: the market treasury is granted the registry's minter
// capability so purchases can mint.
func NewServiceContainer(deps ContainerDeps) (*portssvc.ServiceContainer, error) {
	if deps.AdminAccount == domain.NilAccount {
		return nil, fmt.Errorf("admin account must be set")
	}
	if deps.MarketOwner == domain.NilAccount || deps.MarketTreasury == domain.NilAccount {
		return nil, fmt.Errorf("market owner and treasury accounts must be set")
	}

	recorder := NewEventRecorder(deps.EventStore, deps.Logger)

	ledger := NewLedgerService(deps.AdminAccount, recorder)
	certs := NewCertificateService(deps.AdminAccount, recorder)
	market := NewCourseMarketService(deps.MarketOwner, deps.MarketTreasury, deps.MetadataBaseURI, ledger, certs, recorder)

	if err := certs.GrantRole(context.Background(), deps.AdminAccount, domain.RoleMinter, deps.MarketTreasury); err != nil {
		return nil, fmt.Errorf("failed to grant minter capability to market treasury: %w", err)
	}

	auth, err := NewAuthService(deps.AdminAccount, deps.AdminSecret, deps.JWTSecret, deps.JWTExpiry, deps.JWTIssuer)
	if err != nil {
		return nil, err
	}

	return &portssvc.ServiceContainer{
		Ledger:      ledger,
		Certificate: certs,
		Market:      market,
		Auth:        auth,
		Events:      NewEventService(deps.EventStore),
	}, nil
}
