package service

import (
	"github.com/deppfellow/go-invoicing/internal/lib/auth"
	"github.com/deppfellow/go-invoicing/internal/lib/job"
	"github.com/deppfellow/go-invoicing/internal/repository"
	"github.com/deppfellow/go-invoicing/internal/server"
)

type Services struct {
	Invoices *InvoiceService
	Auth     *AuthService
	Accounts *AccountService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier ActivityNotifier
	if s.Job != nil && s.Config.Integration.NotificationsEnabled() {
		notifier = s.Job
	}

	authenticator := auth.NewAuthenticator(auth.NewCredentialsProvider(repos.Users))

	return &Services{
		Invoices: NewInvoiceService(repos.Invoices, s.Cache, notifier),
		Auth:     NewAuthService(authenticator),
		Accounts: NewAccountService(repos.Users, repos.Customers),
		Job:      s.Job,
	}, nil
}
