// Package console composes the client core: session manager, record
// controllers, and the infrastructure implementations of their ports.
package console

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/editor"
	"github.com/supplyline/scm-console/internal/core/ports"
	"github.com/supplyline/scm-console/internal/core/session"
	"github.com/supplyline/scm-console/internal/infrastructure/credstore"
	"github.com/supplyline/scm-console/internal/infrastructure/queue"
	"github.com/supplyline/scm-console/internal/infrastructure/rest"
)

// Options configures a console instance.
type Options struct {
	// BaseURL of the API, e.g. "http://localhost:8080".
	BaseURL string
	// CredentialDir overrides where the bearer token is persisted. Empty
	// means the user config directory.
	CredentialDir string
	// AuditWorkers sizes the audit forwarding pool; <= 0 uses the default.
	AuditWorkers int
	// Local switches the authenticator to demo mode: any non-empty
	// credentials are accepted and no identity backend is contacted.
	Local bool

	Logger zerolog.Logger
}

// Console is the assembled client core. Controllers share one session, so a
// login or logout is immediately visible to every permission gate.
type Console struct {
	Session   *session.Manager
	Inventory *editor.Controller[domain.InventoryItem]
	Suppliers *editor.Controller[domain.Supplier]
	Orders    *editor.OrderController

	dispatcher *queue.AuditDispatcher
	stop       context.CancelFunc
}

// New wires the client core against the API at opts.BaseURL. The returned
// console owns background audit workers; call Close when done.
func New(opts Options) (*Console, error) {
	creds, err := credstore.NewFileStore(opts.CredentialDir)
	if err != nil {
		return nil, err
	}

	var mgr *session.Manager
	client := rest.NewClient(opts.BaseURL, func() string { return mgr.Credential() }, opts.Logger)

	var auth ports.Authenticator
	if opts.Local {
		auth = session.NewLocalAuthenticator(session.AdminPolicy)
	} else {
		auth = rest.NewAuthenticator(client)
	}

	dispatcher := queue.NewAuditDispatcher(opts.AuditWorkers, rest.NewAuditSink(client), opts.Logger)
	ctx, stop := context.WithCancel(context.Background())
	dispatcher.Start(ctx)

	mgr = session.NewManager(auth, creds, dispatcher, opts.Logger)

	return &Console{
		Session:    mgr,
		Inventory:  editor.NewInventoryController(rest.NewInventoryStore(client), mgr, opts.Logger),
		Suppliers:  editor.NewSupplierController(rest.NewSupplierStore(client), mgr, opts.Logger),
		Orders:     editor.NewOrderController(rest.NewOrderStore(client), mgr, opts.Logger),
		dispatcher: dispatcher,
		stop:       stop,
	}, nil
}

// Close stops the audit workers. Entries still buffered are abandoned; the
// audit contract is best-effort end to end.
func (c *Console) Close() {
	c.stop()
}
