package repository

import (
	"github.com/deppfellow/go-invoicing/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	Invoices  *InvoiceRepository
	Users     *UserRepository
	Customers *CustomerRepository
}

// NewRepositories builds the repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithPool(NewPool(s.DB.Pool))
}

// NewRepositoriesWithPool builds the repositories on an arbitrary Pool.
func NewRepositoriesWithPool(pool Pool) *Repositories {
	return &Repositories{
		Invoices:  NewInvoiceRepository(pool),
		Users:     NewUserRepository(pool),
		Customers: NewCustomerRepository(pool),
	}
}
