package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/lndash/lndash/internal/config"
	"github.com/lndash/lndash/internal/database"
	"github.com/lndash/lndash/internal/database/repository"
	"github.com/lndash/lndash/internal/lnd"
	"github.com/lndash/lndash/internal/logging"
	"github.com/lndash/lndash/internal/service"
	"github.com/lndash/lndash/internal/tui"
)

func main() {
	ctx := context.Background()

	// optional .env in the working directory for LNDASH_ overrides
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cleanup, err := logging.Setup(cfg.Log.File)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer cleanup()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	node, err := lnd.NewRESTClient(lnd.Options{
		BaseURL:       cfg.Node.RESTURL,
		MacaroonPath:  cfg.Node.MacaroonPath,
		TLSCertPath:   cfg.Node.TLSCertPath,
		TLSSkipVerify: cfg.Node.TLSSkipVerify,
		Timeout:       time.Duration(cfg.Node.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("node client: %v", err)
	}

	addrRepo := repository.NewAddressRepo(db)
	contactRepo := repository.NewContactRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	wallet := &service.WalletService{Node: node, Addresses: addrRepo, Payments: paymentRepo}
	peers := &service.PeerService{Node: node, Contacts: contactRepo}
	maintenance := &service.MaintenanceService{DB: db}

	p := tea.NewProgram(tui.New(ctx, cfg, node,
		tui.Services{Wallet: wallet, Peers: peers, Maintenance: maintenance},
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
