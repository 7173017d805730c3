package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/invoice"
)

// InvoicePublisher receives every invoice once its session is committed closed.
type InvoicePublisher interface {
	PublishInvoice(ctx context.Context, inv invoice.Invoice) error
}

type noopPublisher struct{}

func (noopPublisher) PublishInvoice(context.Context, invoice.Invoice) error { return nil }

type Options struct {
	Publisher InvoicePublisher
	Now       func() time.Time
}

// Services bundles the front-of-house components over one database. The table
// registry, ledger and intake share a single per-table lock set.
type Services struct {
	Catalog *Catalog
	Tables  *TableRegistry
	Ledger  *SessionLedger
	Orders  *OrderIntake
	Reports *Reporting
}

func New(db *gorm.DB, opts Options) *Services {
	if opts.Publisher == nil {
		opts.Publisher = noopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	locks := NewKeyedMutex()
	ledger := &SessionLedger{DB: db, locks: locks, now: opts.Now, publisher: opts.Publisher}

	return &Services{
		Catalog: &Catalog{DB: db},
		Tables:  &TableRegistry{DB: db, locks: locks, numbers: NewKeyedMutex()},
		Ledger:  ledger,
		Orders:  &OrderIntake{DB: db, locks: locks, now: opts.Now},
		Reports: &Reporting{ledger: ledger},
	}
}
