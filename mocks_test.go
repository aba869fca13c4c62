package accounts_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/mailer"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockRepositoryManager implements accounts.RepositoryManager. RunInTx
// runs the body against a zero transaction so the flow under test sees
// the same call sequence it would inside a real transaction.
type MockRepositoryManager struct {
	mock.Mock
	customers *MockCustomers
	users     *MockUsers
	geo       *MockGeo
	templates *MockEmailTemplates
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		customers: &MockCustomers{},
		users:     &MockUsers{},
		geo:       &MockGeo{},
		templates: &MockEmailTemplates{},
	}
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Customers() accounts.Customers { return m.customers }

func (m *MockRepositoryManager) Users() accounts.Users { return m.users }

func (m *MockRepositoryManager) Geo() accounts.Geo { return m.geo }

func (m *MockRepositoryManager) EmailTemplates() accounts.EmailTemplates { return m.templates }

// MockCustomers implements accounts.Customers
type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) customer(args mock.Arguments) (*accounts.Customer, error) {
	var record *accounts.Customer
	if v := args.Get(0); v != nil {
		record = v.(*accounts.Customer)
	}
	return record, args.Error(1)
}

func (m *MockCustomers) GetByEmail(ctx context.Context, email string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, email))
}

func (m *MockCustomers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, tx, email))
}

func (m *MockCustomers) GetByMobile(ctx context.Context, mobile int64) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, mobile))
}

func (m *MockCustomers) GetByMobileTx(ctx context.Context, tx bun.IDB, mobile int64) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, tx, mobile))
}

func (m *MockCustomers) GetByActivationToken(ctx context.Context, token string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, token))
}

func (m *MockCustomers) GetByActivationTokenTx(ctx context.Context, tx bun.IDB, token string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, tx, token))
}

func (m *MockCustomers) Create(ctx context.Context, record *accounts.Customer, criteria ...repository.InsertCriteria) (*accounts.Customer, error) {
	return m.echo(m.Called(ctx, record), record)
}

func (m *MockCustomers) CreateTx(ctx context.Context, tx bun.IDB, record *accounts.Customer, criteria ...repository.InsertCriteria) (*accounts.Customer, error) {
	return m.echo(m.Called(ctx, tx, record), record)
}

// echo returns the configured record, or the input one when the
// expectation was configured with (nil, nil), mirroring an insert that
// returns the stored row.
func (m *MockCustomers) echo(args mock.Arguments, record *accounts.Customer) (*accounts.Customer, error) {
	if v := args.Get(0); v != nil {
		return v.(*accounts.Customer), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return record, nil
}

func (m *MockCustomers) RotateActivationToken(ctx context.Context, email string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, email))
}

func (m *MockCustomers) RotateActivationTokenTx(ctx context.Context, tx bun.IDB, email string) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, tx, email))
}

func (m *MockCustomers) ClearActivationToken(ctx context.Context, id uuid.UUID) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomers) ClearActivationTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*accounts.Customer, error) {
	return m.customer(m.Called(ctx, tx, id))
}

// MockUsers implements accounts.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) user(args mock.Arguments) (*accounts.User, error) {
	var record *accounts.User
	if v := args.Get(0); v != nil {
		record = v.(*accounts.User)
	}
	return record, args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*accounts.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUsers) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*accounts.User, error) {
	return m.user(m.Called(ctx, tx, username))
}

func (m *MockUsers) Create(ctx context.Context, record *accounts.User, criteria ...repository.InsertCriteria) (*accounts.User, error) {
	return m.echo(m.Called(ctx, record), record)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *accounts.User, criteria ...repository.InsertCriteria) (*accounts.User, error) {
	return m.echo(m.Called(ctx, tx, record), record)
}

func (m *MockUsers) echo(args mock.Arguments, record *accounts.User) (*accounts.User, error) {
	if v := args.Get(0); v != nil {
		return v.(*accounts.User), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return record, nil
}

// MockGeo implements accounts.Geo
type MockGeo struct {
	mock.Mock
}

func (m *MockGeo) CountryExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGeo) CountryExistsTx(ctx context.Context, tx bun.IDB, id int64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGeo) CityExists(ctx context.Context, countryID, id int64) (bool, error) {
	args := m.Called(ctx, countryID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGeo) CityExistsTx(ctx context.Context, tx bun.IDB, countryID, id int64) (bool, error) {
	args := m.Called(ctx, tx, countryID, id)
	return args.Bool(0), args.Error(1)
}

// MockEmailTemplates implements accounts.EmailTemplates
type MockEmailTemplates struct {
	mock.Mock
}

func (m *MockEmailTemplates) template(args mock.Arguments) (*accounts.EmailTemplate, error) {
	var record *accounts.EmailTemplate
	if v := args.Get(0); v != nil {
		record = v.(*accounts.EmailTemplate)
	}
	return record, args.Error(1)
}

func (m *MockEmailTemplates) GetByType(ctx context.Context, templateType accounts.EmailTemplateType) (*accounts.EmailTemplate, error) {
	return m.template(m.Called(ctx, templateType))
}

func (m *MockEmailTemplates) GetByTypeTx(ctx context.Context, tx bun.IDB, templateType accounts.EmailTemplateType) (*accounts.EmailTemplate, error) {
	return m.template(m.Called(ctx, tx, templateType))
}

// MockSender implements mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
