package main

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nimasrn/invoice-dashboard/internal/config"
	"github.com/nimasrn/invoice-dashboard/internal/model"
	"github.com/nimasrn/invoice-dashboard/internal/repository"
	"github.com/nimasrn/invoice-dashboard/pkg/logger"
	"github.com/nimasrn/invoice-dashboard/pkg/pg"
	"github.com/nimasrn/invoice-dashboard/pkg/worker"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the demo dataset: one login, a handful of customers, their
// invoices and twelve months of pre-aggregated revenue. The reference
// rows land in one transaction; invoices fan out through the worker pool.

type seedUser struct {
	id       string
	name     string
	email    string
	password string
}

type seedCustomer struct {
	id       string
	name     string
	email    string
	imageURL string
}

type seedInvoice struct {
	customerIndex int
	amount        int64
	status        model.InvoiceStatus
	date          string
}

var users = []seedUser{
	{"410544b2-4001-4271-9855-fec4b6a6442a", "User", "user@nextmail.com", "123456"},
}

var customers = []seedCustomer{
	{"d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", "Evil Rabbit", "evil@rabbit.com", "/customers/evil-rabbit.png"},
	{"3958dc9e-712f-4377-85e9-fec4b6a6442a", "Delba de Oliveira", "delba@oliveira.com", "/customers/delba-de-oliveira.png"},
	{"3958dc9e-742f-4377-85e9-fec4b6a6442a", "Lee Robinson", "lee@robinson.com", "/customers/lee-robinson.png"},
	{"76d65c26-f784-44a2-ac19-586678f7c2f2", "Michael Novotny", "michael@novotny.com", "/customers/michael-novotny.png"},
	{"cc27c14a-0acf-4f4a-a6c9-d45682c144b9", "Amy Burns", "amy@burns.com", "/customers/amy-burns.png"},
	{"13d07535-c59e-4157-a011-f8d2ef4e0cbb", "Balazs Orban", "balazs@orban.com", "/customers/balazs-orban.png"},
}

var invoices = []seedInvoice{
	{0, 15795, model.InvoiceStatusPending, "2022-12-06"},
	{1, 20348, model.InvoiceStatusPending, "2022-11-14"},
	{4, 3040, model.InvoiceStatusPaid, "2022-10-29"},
	{3, 44800, model.InvoiceStatusPaid, "2023-09-10"},
	{5, 34577, model.InvoiceStatusPending, "2023-08-05"},
	{2, 54246, model.InvoiceStatusPending, "2023-07-16"},
	{0, 666, model.InvoiceStatusPending, "2023-06-27"},
	{3, 32545, model.InvoiceStatusPaid, "2023-06-09"},
	{4, 1250, model.InvoiceStatusPaid, "2023-06-17"},
	{5, 8546, model.InvoiceStatusPaid, "2023-06-07"},
	{1, 500, model.InvoiceStatusPaid, "2023-08-19"},
	{5, 8945, model.InvoiceStatusPaid, "2023-06-03"},
	{2, 1000, model.InvoiceStatusPaid, "2022-06-05"},
}

var revenue = map[string]int64{
	"2023-01": 200000, "2023-02": 180000, "2023-03": 220000,
	"2023-04": 250000, "2023-05": 230000, "2023-06": 320000,
	"2023-07": 350000, "2023-08": 370000, "2023-09": 250000,
	"2023-10": 280000, "2023-11": 300000, "2023-12": 480000,
}

func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(writeConf, writeConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)

	// users, customers and revenue land atomically; a partial reference
	// dataset is worse than none
	err = db.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if _, err := userRepo.Create(ctx, &model.User{
				ID:       u.id,
				Name:     u.name,
				Email:    u.email,
				Password: string(hash),
			}); err != nil {
				return err
			}
		}
		for _, c := range customers {
			if _, err := customerRepo.Create(ctx, &model.Customer{
				ID:       c.id,
				Name:     c.name,
				Email:    c.email,
				ImageURL: c.imageURL,
			}); err != nil {
				return err
			}
		}
		for month, amount := range revenue {
			if err := revenueRepo.Upsert(ctx, &model.Revenue{Month: month, Revenue: amount}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("reference data seed rolled back", "error", err)
		return
	}

	// invoices go through the worker pool; the rows are independent and the
	// pool's goroutines cannot share one transaction
	var pending sync.WaitGroup
	pending.Add(len(invoices))
	wm := worker.NewWorkerManager(len(invoices), 4, nil)
	wm.SetWorker(func(workerIndex int, job interface{}) {
		defer pending.Done()
		in := job.(seedInvoice)
		if _, err := invoiceRepo.Create(ctx, &model.Invoice{
			ID:         uuid.NewString(),
			CustomerID: customers[in.customerIndex].id,
			Amount:     in.amount,
			Status:     in.status,
			Date:       in.date,
		}); err != nil {
			logger.Error("failed seeding invoice", "error", err, "date", in.date)
		}
	})
	for _, in := range invoices {
		wm.Enqueue(in)
	}
	go func() {
		pending.Wait()
		wm.Exit()
	}()
	_ = wm.Start()

	logger.Info("seed complete",
		"users", len(users),
		"customers", len(customers),
		"invoices", len(invoices),
		"revenue_months", len(revenue))
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
